package provider

import "context"

type Repository interface {
	List(ctx context.Context) ([]Provider, error)
	GetByID(ctx context.Context, id string) (*Provider, error)
	Exists(ctx context.Context, id string) bool
}
