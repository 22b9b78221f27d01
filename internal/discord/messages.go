package discord

// Friendly message constants for Discord responses
const (
	// Economy
	MsgNotEnoughExperience = "⚠️ **Not Enough Experience!**\nWater your plants to earn more."
	MsgNotEnoughItems      = "🎒 **Not Enough Items**\nYou don't have that item."
	MsgNoFreePots          = "🪴 **No Free Pots**\nBuy another pot or make room first."
	MsgPotCapReached       = "🪴 **Pot Limit Reached**\nYou can't own any more pots."
	MsgNotInRoster         = "🛒 **Not In The Shop**\nThat plant isn't offered to you this month."
	MsgShopNotViewed       = "🛒 **No Shop Yet**\nOpen `/shop` first, then spend a refresh token on it."

	// Plants
	MsgPlantNotFound  = "❓ **Plant Not Found**\nMaybe check the spelling?"
	MsgPlantDead      = "🥀 **That Plant Has Died**\nA revival token can bring it back."
	MsgNameCollision  = "📛 **Name Taken**\nYou already have a plant with that name."
	MsgNotOwner       = "🔒 **Not Yours To Rename**\nOnly the plant's original owner may rename it."
	MsgInvalidName    = "📛 **Invalid Name**\nNames must be 1 to 50 characters."
	MsgNoKey          = "🔑 **No Key**\nYou need a key to water plants in that garden."
	MsgUserNotFound   = "👤 **User Not Found**\nHave they adopted a plant yet?"
	MsgSelfTarget     = "🙃 You can't do that to yourself."
	MsgNoPlantsListed = "🌱 You don't have any plants yet. Visit `/shop` to adopt one!"

	// Trades
	MsgTradeBusy     = "🔁 **Already Trading**\nFinish your current trade first."
	MsgNoAlivePlants = "🥀 **Nothing To Trade**\nBoth sides need at least one living plant."
	MsgTradeNotFound = "⌛ **Trade Expired**\nThat trade is no longer active."

	// Cooldowns
	MsgCooldownActive = "⏳ **Whoa there!**\nYour plant isn't thirsty yet."

	MsgTemporarilyUnavailable = "🛠️ The garden is temporarily unavailable. Try again shortly."
	MsgGenericError           = "❌ Something went wrong."
	MsgConnectionError        = "Error connecting to game server."
)
