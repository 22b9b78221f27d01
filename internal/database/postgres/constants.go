package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToGetUser        = "failed to get user"
	ErrMsgFailedToLockUser       = "failed to lock user"
	ErrMsgFailedToUpsertUser     = "failed to upsert user"
	ErrMsgFailedToAddExperience  = "failed to add experience"
	ErrMsgFailedToGetInventory   = "failed to get inventory"
	ErrMsgFailedToAddInventory   = "failed to add inventory"
	ErrMsgFailedToConsumeItem    = "failed to consume item"
	ErrMsgFailedToGetAchievement = "failed to get achievements"
)

// Error Messages - Plant Operations
const (
	ErrMsgFailedToGetPlant     = "failed to get plant"
	ErrMsgFailedToListPlants   = "failed to list plants"
	ErrMsgFailedToInsertPlant  = "failed to insert plant"
	ErrMsgFailedToSavePlant    = "failed to save plant"
	ErrMsgFailedToDeletePlant  = "failed to delete plant"
	ErrMsgFailedToCheckName    = "failed to check plant name"
	ErrMsgFailedToCountPlants  = "failed to count plants"
	ErrMsgFailedToScanPlant    = "failed to scan plant"
	ErrMsgFailedToKillPlants   = "failed to kill overdue plants"
	ErrMsgFailedToMarkWilting  = "failed to mark wilting plants"
	ErrMsgFailedToMaxLifetimes = "failed to update max plant lifetimes"
)

// Error Messages - Shop & Keys Operations
const (
	ErrMsgFailedToGetRoster   = "failed to get shop roster"
	ErrMsgFailedToSaveRoster  = "failed to save shop roster"
	ErrMsgFailedToCheckKey    = "failed to check garden key"
	ErrMsgFailedToGrantKey    = "failed to grant garden key"
	ErrMsgFailedToRevokeKey   = "failed to revoke garden key"
	ErrMsgFailedToListKeys    = "failed to list garden keys"
	ErrMsgFailedToScanKey     = "failed to scan garden key"
	ErrMsgFailedToGetCooldown = "failed to get cooldown"
	ErrMsgFailedToSetCooldown = "failed to set cooldown"
)

// plantColumns is the column list every plant query selects, in scanPlant order
const plantColumns = `id, user_id, name, plant_type, plant_variant, nourishment, last_water_time,
	original_owner_id, plant_pot_hue, adoption_time, notification_sent, immortal`

// User queries
const (
	queryGetUser = `
		SELECT user_id, plant_limit, pot_type, experience, last_plant_shop_time, plant_pot_hue, has_premium
		FROM user_settings
		WHERE user_id = $1`

	queryGetUserForUpdate = queryGetUser + ` FOR UPDATE`

	queryInsertUserDefaults = `
		INSERT INTO user_settings (user_id, plant_limit, pot_type, experience, last_plant_shop_time, plant_pot_hue, has_premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO NOTHING`

	queryUpsertUser = `
		INSERT INTO user_settings (user_id, plant_limit, pot_type, experience, last_plant_shop_time, plant_pot_hue, has_premium)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE
		SET plant_limit = EXCLUDED.plant_limit,
		    pot_type = EXCLUDED.pot_type,
		    experience = EXCLUDED.experience,
		    last_plant_shop_time = EXCLUDED.last_plant_shop_time,
		    plant_pot_hue = EXCLUDED.plant_pot_hue,
		    has_premium = EXCLUDED.has_premium`

	queryAddExperience = `
		UPDATE user_settings
		SET experience = experience + $2
		WHERE user_id = $1 AND experience + $2 >= 0`
)

// Inventory queries
const (
	queryGetInventory = `
		SELECT item_name, GREATEST(amount, 0)
		FROM user_inventory
		WHERE user_id = $1
		ORDER BY item_name`

	queryAddInventory = `
		INSERT INTO user_inventory (user_id, item_name, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item_name) DO UPDATE
		SET amount = GREATEST(user_inventory.amount, 0) + EXCLUDED.amount`

	queryConsumeInventory = `
		UPDATE user_inventory
		SET amount = amount - $3
		WHERE user_id = $1 AND item_name = $2 AND amount >= $3`
)

// Plant queries
const (
	queryListPlants = `SELECT ` + plantColumns + `
		FROM plant_levels
		WHERE user_id = $1
		ORDER BY adoption_time, id`

	queryGetPlant = `SELECT ` + plantColumns + `
		FROM plant_levels
		WHERE user_id = $1 AND LOWER(name) = LOWER($2)`

	queryGetPlantForUpdate = queryGetPlant + ` FOR UPDATE`

	queryInsertPlant = `
		INSERT INTO plant_levels (user_id, name, plant_type, plant_variant, nourishment, last_water_time,
			original_owner_id, plant_pot_hue, adoption_time, notification_sent, immortal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	queryUpsertPlant = `
		INSERT INTO plant_levels (id, user_id, name, plant_type, plant_variant, nourishment, last_water_time,
			original_owner_id, plant_pot_hue, adoption_time, notification_sent, immortal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    name = EXCLUDED.name,
		    plant_type = EXCLUDED.plant_type,
		    plant_variant = EXCLUDED.plant_variant,
		    nourishment = EXCLUDED.nourishment,
		    last_water_time = EXCLUDED.last_water_time,
		    original_owner_id = EXCLUDED.original_owner_id,
		    plant_pot_hue = EXCLUDED.plant_pot_hue,
		    adoption_time = EXCLUDED.adoption_time,
		    notification_sent = EXCLUDED.notification_sent,
		    immortal = EXCLUDED.immortal`

	queryDeletePlant = `DELETE FROM plant_levels WHERE id = $1`

	queryPlantNameTaken = `
		SELECT EXISTS (
			SELECT 1 FROM plant_levels
			WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3
		)`

	queryCountPlants = `SELECT COUNT(*) FROM plant_levels WHERE user_id = $1`
)

// Lifecycle queries
const (
	queryKillOverdue = `
		UPDATE plant_levels
		SET nourishment = -nourishment
		WHERE nourishment > 0 AND NOT immortal AND last_water_time < $1
		RETURNING id, user_id, name, plant_type, nourishment, adoption_time`

	queryUpdateMaxLifetimes = `
		INSERT INTO user_achievement_counts (user_id, max_plant_lifetime)
		SELECT user_id, MAX(EXTRACT(EPOCH FROM ($1::timestamp - adoption_time)))::BIGINT
		FROM plant_levels
		WHERE nourishment > 0 AND NOT immortal
		GROUP BY user_id
		ON CONFLICT (user_id) DO UPDATE
		SET max_plant_lifetime = GREATEST(user_achievement_counts.max_plant_lifetime, EXCLUDED.max_plant_lifetime)`

	queryMarkWilting = `
		UPDATE plant_levels
		SET notification_sent = TRUE
		WHERE nourishment > 0 AND NOT immortal AND NOT notification_sent AND last_water_time < $1
		RETURNING ` + plantColumns
)

// Shop roster queries
const (
	queryGetRoster = `
		SELECT last_shop_timestamp, plant_level_0, plant_level_1, plant_level_2, plant_level_3,
		       plant_level_4, plant_level_5, plant_level_6
		FROM user_available_plants
		WHERE user_id = $1
		FOR UPDATE`

	rosterValues = `($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	queryUpsertRoster = `
		INSERT INTO user_available_plants (user_id, last_shop_timestamp, plant_level_0, plant_level_1,
			plant_level_2, plant_level_3, plant_level_4, plant_level_5, plant_level_6)
		VALUES ` + rosterValues + `
		ON CONFLICT (user_id) DO UPDATE
		SET last_shop_timestamp = EXCLUDED.last_shop_timestamp,
		    plant_level_0 = EXCLUDED.plant_level_0,
		    plant_level_1 = EXCLUDED.plant_level_1,
		    plant_level_2 = EXCLUDED.plant_level_2,
		    plant_level_3 = EXCLUDED.plant_level_3,
		    plant_level_4 = EXCLUDED.plant_level_4,
		    plant_level_5 = EXCLUDED.plant_level_5,
		    plant_level_6 = EXCLUDED.plant_level_6`

	queryInsertRosterIfAbsent = `
		INSERT INTO user_available_plants (user_id, last_shop_timestamp, plant_level_0, plant_level_1,
			plant_level_2, plant_level_3, plant_level_4, plant_level_5, plant_level_6)
		VALUES ` + rosterValues + `
		ON CONFLICT (user_id) DO NOTHING`
)

// Garden key queries
const (
	queryHasKey = `SELECT EXISTS (SELECT 1 FROM garden_keys WHERE owner_id = $1 AND guest_id = $2)`

	queryGrantKey = `
		INSERT INTO garden_keys (owner_id, guest_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, guest_id) DO NOTHING`

	queryRevokeKey = `DELETE FROM garden_keys WHERE owner_id = $1 AND guest_id = $2`

	queryListKeys = `
		SELECT owner_id, guest_id, created_at
		FROM garden_keys
		WHERE owner_id = $1
		ORDER BY created_at, guest_id`
)

// Guest cooldown queries
const (
	queryGetCooldown = `
		SELECT last_used_at
		FROM guest_water_cooldowns
		WHERE user_id = $1 AND action_name = $2`

	querySetCooldown = `
		INSERT INTO guest_water_cooldowns (user_id, action_name, last_used_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, action_name) DO UPDATE
		SET last_used_at = EXCLUDED.last_used_at`
)
