package services

import (
	"github.com/2HgO/subscriber-requests-go/db"
	"go.uber.org/zap"
)

type service struct {
	store db.RecordStore
	log   *zap.Logger
}
