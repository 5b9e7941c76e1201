package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	employeeerrors "github.com/ASARUDHEEN-MP/Employee-managment/internal/employee/errors"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/events"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/messaging/kafka"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/schema"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
)

const (
	EmployeeListKeyPrefix = "employees:user:"
	employeeListTTL       = time.Hour
)

func GetEmployeeListKey(userID string) string {
	return EmployeeListKeyPrefix + userID
}

type Service interface {
	Create(ctx context.Context, userID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	List(ctx context.Context, userID string, search string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, userID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, userID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	registry schema.Registry
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, registry schema.Registry, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, registry, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	registry schema.Registry,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		registry: registry,
		outbox:   outboxRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(
	ctx context.Context,
	userID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("email", req.Email),
	)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Pre-check hanya untuk pesan error yang lebih baik; constraint DB tetap
	// otoritas terakhir saat race.
	taken, err := s.repo.EmailExists(ctx, email, "")
	if err != nil {
		s.logger.Error("create employee email pre-check failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
	}

	if err := s.registry.Validate(ctx, userID, req.CustomFields); err != nil {
		s.logger.Warn("create employee custom field validation failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	fields := datatypes.JSONMap(req.CustomFields)
	if fields == nil {
		fields = datatypes.JSONMap{}
	}

	empl := &Employee{
		ID:           uuid.New(),
		UserID:       uuid.MustParse(userID), // tenant dipaksa dari caller yang terautentikasi
		Name:         req.Name,
		Email:        email,
		PhoneNumber:  req.PhoneNumber,
		CustomFields: fields,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			UserID:     userID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx, userID)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

// List serves the unfiltered tenant listing through the cache and applies the
// search filter in memory: case-insensitive substring match against name,
// email, or phone number.
func (s *service) List(
	ctx context.Context,
	userID string,
	search string,
) ([]EmployeeResponse, error) {
	base, err := s.listBase(ctx, userID)
	if err != nil {
		return nil, err
	}

	q := strings.TrimSpace(strings.ToLower(search))
	if q == "" {
		return base, nil
	}

	filtered := make([]EmployeeResponse, 0, len(base))
	for _, e := range base {
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Email), q) ||
			strings.Contains(strings.ToLower(e.PhoneNumber), q) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (s *service) listBase(ctx context.Context, userID string) ([]EmployeeResponse, error) {
	cacheKey := GetEmployeeListKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight supaya cache miss yang bersamaan hanya memukul DB sekali
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindAllByUser(ctx, userID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, employeeListTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		s.logger.Error("list employees failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	userID, id string,
) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested",
		zap.String("user_id", userID),
		zap.String("employee_id", id),
	)
	empl, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	userID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("employee_id", id),
	)

	empl, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Field yang dikirim tapi kosong tetap wajib berisi
	blank := make([]string, 0, 3)
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		blank = append(blank, "name")
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) == "" {
		blank = append(blank, "email")
	}
	if req.PhoneNumber != nil && strings.TrimSpace(*req.PhoneNumber) == "" {
		blank = append(blank, "phone_number")
	}
	if len(blank) > 0 {
		return EmployeeResponse{}, employeeerrors.ErrMissingRequiredFields.WithDetails(blank)
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != empl.Email {
			taken, err := s.repo.EmailExists(ctx, email, id)
			if err != nil {
				s.logger.Error("update employee email pre-check failed", zap.String("request_id", rid), zap.Error(err))
				return EmployeeResponse{}, err
			}
			if taken {
				return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
			}
		}
		empl.Email = email
	}

	if req.CustomFields != nil {
		if err := s.registry.Validate(ctx, userID, req.CustomFields); err != nil {
			s.logger.Warn("update employee custom field validation failed",
				zap.String("request_id", rid),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
		empl.CustomFields = datatypes.JSONMap(req.CustomFields)
	}

	if req.Name != nil {
		empl.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		empl.PhoneNumber = *req.PhoneNumber
	}

	if err := s.repo.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateListCache(ctx, userID)

	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(
	ctx context.Context,
	userID, id string,
) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	affected, err := qtx.Delete(ctx, userID, id)
	if err != nil {
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}

	if s.outbox != nil {
		event := events.EmployeeDeletedEvent{
			EventType:  "employee_deleted",
			RequestID:  rid,
			EmployeeID: id,
			UserID:     userID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   id,
			EventType:     event.EventType,
			Topic:         events.EmployeeLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("delete employee outbox persist failed",
				zap.String("employee_id", id),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateListCache(ctx, userID)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// invalidateListCache drops the tenant's cached listing. A cache failure must
// never fail the mutation it follows, so it is only logged.
func (s *service) invalidateListCache(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeListKey(userID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	fields := map[string]any(empl.CustomFields)
	if fields == nil {
		fields = map[string]any{}
	}
	return EmployeeResponse{
		ID:           empl.ID.String(),
		UserID:       empl.UserID.String(),
		Name:         empl.Name,
		Email:        empl.Email,
		PhoneNumber:  empl.PhoneNumber,
		CustomFields: fields,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
