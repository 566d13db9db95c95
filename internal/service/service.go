package service

import (
	"paypalsync/internal/config"
	"paypalsync/internal/store"
)

type Service struct {
	Account *AccountService
	Entry   *EntryService
	Config  *config.Config
}

func NewService(repo store.Repository, cfg *config.Config) *Service {
	return &Service{
		Account: NewAccountService(repo),
		Entry:   NewEntryService(repo),
		Config:  cfg,
	}
}
