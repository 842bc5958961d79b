package services

import (
	"github.com/nillion-oss/staking-stats/internal/clients/chainclient"
	"github.com/nillion-oss/staking-stats/internal/config"
	"github.com/nillion-oss/staking-stats/internal/storage"
)

type Service struct {
	cfg   *config.Config
	chain chainclient.ChainInterface
	store storage.StatsStore
}

func NewService(
	cfg *config.Config,
	chain chainclient.ChainInterface,
	store storage.StatsStore,
) *Service {
	return &Service{
		cfg:   cfg,
		chain: chain,
		store: store,
	}
}
