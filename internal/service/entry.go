package service

import (
	"time"

	"paypalsync/internal/model"
	"paypalsync/internal/store"
)

type EntryService struct {
	repo store.Repository
}

func NewEntryService(repo store.Repository) *EntryService {
	return &EntryService{repo: repo}
}

func (es *EntryService) RecentEntries(account *model.Account, limit int) ([]*model.Entry, error) {
	return es.repo.RecentEntries(account.ID, limit)
}

func (es *EntryService) EntriesSince(account *model.Account, from time.Time) ([]*model.Entry, error) {
	return es.repo.EntriesInRange(account.ID, from)
}
