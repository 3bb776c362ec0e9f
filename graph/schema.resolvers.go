package graph

import (
	"context"

	"github.com/ZamarianPatrick/oasis-backend/api"
	"github.com/ZamarianPatrick/oasis-backend/garden"
	"github.com/ZamarianPatrick/oasis-backend/model"
)

func (r *mutationResolver) Replace(ctx context.Context, input model.ReplaceInput) (*garden.Result, error) {
	def, err := api.Select(r.garden.Catalog(), input)
	if err != nil {
		return nil, err
	}

	return r.garden.RequestReplacement(ctx, def, garden.Answer(input.Confirm))
}

func (r *mutationResolver) Water(ctx context.Context, amount int) (*model.Plant, error) {
	return r.garden.Water(ctx, amount)
}

func (r *mutationResolver) Rename(ctx context.Context, nickname string) (*model.Plant, error) {
	return r.garden.Rename(ctx, nickname)
}

func (r *queryResolver) Catalog(ctx context.Context) ([]api.Offering, error) {
	return api.Offerings(r.garden.Catalog()), nil
}

func (r *queryResolver) CurrentPlant(ctx context.Context) (*model.Plant, error) {
	return r.garden.Current(ctx)
}

func (r *queryResolver) History(ctx context.Context) ([]*model.Plant, error) {
	return r.garden.History(ctx)
}

func (r *subscriptionResolver) PlantChanged(ctx context.Context) (<-chan garden.Event, error) {
	return r.controller.PlantChannel(ctx), nil
}

// Mutation returns MutationResolver implementation.
func (r *Resolver) Mutation() MutationResolver { return &mutationResolver{r} }

// Query returns QueryResolver implementation.
func (r *Resolver) Query() QueryResolver { return &queryResolver{r} }

// Subscription returns SubscriptionResolver implementation.
func (r *Resolver) Subscription() SubscriptionResolver { return &subscriptionResolver{r} }

type mutationResolver struct{ *Resolver }
type queryResolver struct{ *Resolver }
type subscriptionResolver struct{ *Resolver }
