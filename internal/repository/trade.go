package repository

import "context"

// Trade defines persistence for the trade protocol
type Trade interface {
	User
	BeginTx(ctx context.Context) (TradeTx, error)
}

// TradeTx defines the transaction surface of a swap commit
type TradeTx interface {
	UserTx
	PlantTx
}
