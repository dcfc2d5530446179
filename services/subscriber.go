package services

import (
	"bytes"
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/2HgO/subscriber-requests-go/db"
	"github.com/2HgO/subscriber-requests-go/errors"
	"github.com/2HgO/subscriber-requests-go/models"
	"github.com/2HgO/subscriber-requests-go/types/requests"
	"github.com/2HgO/subscriber-requests-go/types/responses"
	"github.com/2HgO/subscriber-requests-go/validation"
)

const savedMessage = "Данные успешно сохранены"

type SubscriberService interface {
	CreateRequest(context.Context, requests.CreateSubscriberRequest) (*responses.CreateSubscriberRequestResponse, error)
}

func NewSubscriberService(store db.RecordStore, log *zap.Logger) SubscriberService {
	return &subscriberService{
		service{
			store: store,
			log:   log,
		},
	}
}

type subscriberService struct {
	service
}

// CreateRequest validates req and stores it under its natural key. Nothing is
// written unless every field is valid. Concurrent requests for the same key
// race and the last write wins.
func (s *subscriberService) CreateRequest(ctx context.Context, req requests.CreateSubscriberRequest) (*responses.CreateSubscriberRequestResponse, error) {
	record, err := validation.Validate(req)
	if err != nil {
		return nil, err
	}

	document, err := encodeDocument(record)
	if err != nil {
		return nil, errors.NewFatalError(err)
	}

	if err = s.store.EnsureNamespace(ctx); err != nil {
		s.log.Error("ensuring storage namespace", zap.Error(err))
		return nil, errors.NewStorageError(err)
	}

	key := record.StorageKey()
	location, err := s.store.Put(ctx, key, document)
	if err != nil {
		s.log.Error("storing subscriber request", zap.String("key", key), zap.Error(err))
		return nil, errors.NewStorageError(err)
	}
	s.log.Info("subscriber request stored", zap.String("key", key), zap.String("location", location))

	return &responses.CreateSubscriberRequestResponse{
		Status:  responses.StatusOK,
		Message: savedMessage,
		File:    location,
	}, nil
}

func encodeDocument(record *models.SubscriberRequest) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(record); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
