package contact

import (
	"context"
	"fmt"
)

type ContactStatsOutput struct {
	TotalContacts int64 `json:"total_contacts"`
}

type ContactStats interface {
	Execute(ctx context.Context) (ContactStatsOutput, error)
}

type contactCounter interface {
	Count(ctx context.Context) (int64, error)
}

type contactStats struct {
	repo contactCounter
}

func NewContactStats(repo contactCounter) ContactStats {
	return &contactStats{repo: repo}
}

func (uc *contactStats) Execute(ctx context.Context) (ContactStatsOutput, error) {
	count, err := uc.repo.Count(ctx)
	if err != nil {
		return ContactStatsOutput{}, fmt.Errorf("%w: %v", ErrContactStats, err)
	}
	return ContactStatsOutput{TotalContacts: count}, nil
}
