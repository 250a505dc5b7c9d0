package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/sonuudigital/nimblestore/internal/repository"
)

type DB interface {
	repository.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}
