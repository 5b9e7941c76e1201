package customfield

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	customfielderrors "github.com/ASARUDHEEN-MP/Employee-managment/internal/customfield/errors"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/employee"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/events"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/messaging/kafka"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//go:generate mockgen -source=customfield_service.go -destination=mock/customfield_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req CreateCustomFieldRequest) (CustomFieldResponse, error)
	List(ctx context.Context, userID string) ([]CustomFieldResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	outbox    kafka.OutboxRepository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employees, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("customfield.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customfield.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		outbox:    outboxRepo,
		rdb:       rdb,
		logger:    l,
	}
}

func (s *service) Create(
	ctx context.Context,
	userID string,
	req CreateCustomFieldRequest,
) (CustomFieldResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create custom field requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("field_name", req.FieldName),
	)

	// Pre-check untuk pesan error yang jelas; unique index per-user tetap
	// otoritas terakhir saat race.
	exists, err := s.repo.NameExists(ctx, userID, req.FieldName)
	if err != nil {
		s.logger.Error("create custom field pre-check failed", zap.String("request_id", rid), zap.Error(err))
		return CustomFieldResponse{}, err
	}
	if exists {
		return CustomFieldResponse{}, customfielderrors.ErrFieldNameAlreadyExists
	}

	def := &CustomFieldDefinition{
		ID:        uuid.New(),
		UserID:    uuid.MustParse(userID),
		FieldName: req.FieldName,
		FieldType: req.FieldType,
	}

	if err := s.repo.Create(ctx, def); err != nil {
		s.logger.Error("create custom field persist failed",
			zap.String("request_id", rid),
			zap.String("field_name", req.FieldName),
			zap.Error(err),
		)
		return CustomFieldResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create custom field success",
		zap.String("request_id", rid),
		zap.String("field_id", def.ID.String()),
		zap.String("field_name", def.FieldName),
	)

	return mapToResponse(*def), nil
}

func (s *service) List(
	ctx context.Context,
	userID string,
) ([]CustomFieldResponse, error) {
	defs, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list custom fields failed", zap.String("user_id", userID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	res := make([]CustomFieldResponse, len(defs))
	for i, d := range defs {
		res[i] = mapToResponse(d)
	}
	return res, nil
}

// Delete removes a field definition and strips its key from every employee of
// the same user inside one transaction: either every bag is cleaned and the
// definition is gone, or nothing happened.
func (s *service) Delete(
	ctx context.Context,
	userID, id string,
) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete custom field requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("field_id", id),
	)

	def, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	fieldName := def.FieldName

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete custom field begin tx failed",
			zap.String("field_name", fieldName),
			zap.Error(err),
		)
		return err
	}
	defer tx.Rollback()

	empTx := s.employees.WithTx(tx)
	rows, err := empTx.LockCustomFieldsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("delete custom field load employees failed",
			zap.String("field_name", fieldName),
			zap.Error(err),
		)
		return err
	}

	touched := 0
	for _, row := range rows {
		if _, ok := row.CustomFields[fieldName]; !ok {
			continue
		}
		delete(row.CustomFields, fieldName)
		if err := empTx.UpdateCustomFields(ctx, row.ID.String(), row.CustomFields); err != nil {
			s.logger.Error("delete custom field strip key failed",
				zap.String("field_name", fieldName),
				zap.String("employee_id", row.ID.String()),
				zap.Error(err),
			)
			return err
		}
		touched++
	}

	affected, err := s.repo.WithTx(tx).Delete(ctx, userID, id)
	if err != nil {
		s.logger.Error("delete custom field definition failed",
			zap.String("field_name", fieldName),
			zap.Error(err),
		)
		return err
	}
	if affected == 0 {
		// Dihapus oleh request lain di antara resolve dan transaksi ini
		return customfielderrors.ErrCustomFieldNotFound
	}

	if s.outbox != nil {
		event := events.CustomFieldDeletedEvent{
			EventType:        "custom_field_deleted",
			RequestID:        rid,
			FieldID:          id,
			FieldName:        fieldName,
			UserID:           userID,
			EmployeesTouched: touched,
			OccurredAt:       time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "custom_field",
			AggregateID:   id,
			EventType:     event.EventType,
			Topic:         events.EmployeeLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("delete custom field outbox persist failed",
				zap.String("field_name", fieldName),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete custom field commit failed",
			zap.String("field_name", fieldName),
			zap.Error(err),
		)
		return err
	}

	// Invalidasi setelah commit; kegagalan di sini tidak membatalkan operasi
	if s.rdb != nil {
		cacheKey := employee.GetEmployeeListKey(userID)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate employee list cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}

	s.logger.Info("delete custom field success",
		zap.String("request_id", rid),
		zap.String("field_id", id),
		zap.String("field_name", fieldName),
		zap.Int("employees_touched", touched),
	)
	return nil
}

func mapToResponse(def CustomFieldDefinition) CustomFieldResponse {
	return CustomFieldResponse{
		ID:        def.ID.String(),
		UserID:    def.UserID.String(),
		FieldName: def.FieldName,
		FieldType: def.FieldType,
	}
}
