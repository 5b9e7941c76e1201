package employee_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ASARUDHEEN-MP/Employee-managment/internal/employee"
	employeeerrors "github.com/ASARUDHEEN-MP/Employee-managment/internal/employee/errors"
	employeemock "github.com/ASARUDHEEN-MP/Employee-managment/internal/employee/mock"
	kafkamock "github.com/ASARUDHEEN-MP/Employee-managment/internal/messaging/kafka/mock"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/schema"
	schemamock "github.com/ASARUDHEEN-MP/Employee-managment/internal/schema/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const testUserID = "7f9b6a3e-8d2c-4f1a-9b5e-1c3d5e7f9a0b"

func newEmployee(userID, name, email, phone string, fields datatypes.JSONMap) employee.Employee {
	if fields == nil {
		fields = datatypes.JSONMap{}
	}
	return employee.Employee{
		ID:           uuid.New(),
		UserID:       uuid.MustParse(userID),
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		CustomFields: fields,
	}
}

func TestEmployeeService_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()

	repo := employeemock.NewMockRepository(ctrl)
	registry := schemamock.NewMockRegistry(ctrl)
	outbox := kafkamock.NewMockOutboxRepository(ctrl)

	req := employee.CreateEmployeeRequest{
		Name:        "Budi Santoso",
		Email:       "Budi.Santoso@Example.com",
		PhoneNumber: "081234567890",
	}

	repo.EXPECT().
		EmailExists(gomock.Any(), "budi.santoso@example.com", "").
		Return(false, nil)
	registry.EXPECT().
		Validate(gomock.Any(), testUserID, gomock.Nil()).
		Return(nil)

	dbMock.ExpectBegin()
	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, empl *employee.Employee) error {
			assert.Equal(t, testUserID, empl.UserID.String())
			assert.Equal(t, "budi.santoso@example.com", empl.Email)
			assert.NotNil(t, empl.CustomFields)
			return nil
		})
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox)
	outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	dbMock.ExpectCommit()

	redisMock.ExpectDel(employee.GetEmployeeListKey(testUserID)).SetVal(1)

	svc := employee.NewServiceWithOutbox(db, repo, registry, outbox, rdb, zap.NewNop())

	resp, err := svc.Create(context.Background(), testUserID, req)
	assert.NoError(t, err)
	assert.Equal(t, testUserID, resp.UserID)
	assert.Equal(t, "Budi Santoso", resp.Name)
	assert.Equal(t, "budi.santoso@example.com", resp.Email)
	assert.Equal(t, "081234567890", resp.PhoneNumber)
	assert.NotNil(t, resp.CustomFields)
	assert.Empty(t, resp.CustomFields)

	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmployeeService_Create_DuplicateEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, _ := redismock.NewClientMock()
	repo := employeemock.NewMockRepository(ctrl)
	registry := schemamock.NewMockRegistry(ctrl)

	repo.EXPECT().
		EmailExists(gomock.Any(), "budi@example.com", "").
		Return(true, nil)

	svc := employee.NewService(db, repo, registry, rdb, zap.NewNop())

	_, err = svc.Create(context.Background(), testUserID, employee.CreateEmployeeRequest{
		Name:        "Budi",
		Email:       "budi@example.com",
		PhoneNumber: "0812",
	})
	assert.ErrorIs(t, err, employeeerrors.ErrEmailAlreadyExists)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestEmployeeService_Create_InvalidCustomFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, _ := redismock.NewClientMock()
	repo := employeemock.NewMockRepository(ctrl)
	registry := schemamock.NewMockRegistry(ctrl)

	fields := map[string]any{"nickname": "bud", "hobby": "chess"}

	repo.EXPECT().EmailExists(gomock.Any(), gomock.Any(), "").Return(false, nil)
	registry.EXPECT().
		Validate(gomock.Any(), testUserID, fields).
		Return(schema.NewInvalidFieldsError([]string{"hobby", "nickname"}))

	svc := employee.NewService(db, repo, registry, rdb, zap.NewNop())

	_, err = svc.Create(context.Background(), testUserID, employee.CreateEmployeeRequest{
		Name:         "Budi",
		Email:        "budi@example.com",
		PhoneNumber:  "0812",
		CustomFields: fields,
	})
	assert.ErrorIs(t, err, schema.ErrInvalidCustomFields)
}

func TestEmployeeService_Create_RepoErrorRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := employeemock.NewMockRepository(ctrl)
	registry := schemamock.NewMockRegistry(ctrl)

	repo.EXPECT().EmailExists(gomock.Any(), gomock.Any(), "").Return(false, nil)
	registry.EXPECT().Validate(gomock.Any(), testUserID, gomock.Nil()).Return(nil)

	dbMock.ExpectBegin()
	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)
	dbMock.ExpectRollback()

	svc := employee.NewService(db, repo, registry, rdb, zap.NewNop())

	_, err = svc.Create(context.Background(), testUserID, employee.CreateEmployeeRequest{
		Name:        "Budi",
		Email:       "budi@example.com",
		PhoneNumber: "0812",
	})
	assert.Error(t, err)

	assert.NoError(t, dbMock.ExpectationsWereMet())
	// Kegagalan sebelum commit tidak boleh menyentuh cache
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmployeeService_List_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := employeemock.NewMockRepository(ctrl)
	registry := schemamock.NewMockRegistry(ctrl)

	empls := []employee.Employee{
		newEmployee(testUserID, "Budi Santoso", "budi@example.com", "0812", nil),
		newEmployee(testUserID, "Citra Dewi", "citra@example.com", "0813", datatypes.JSONMap{"nickname": "cit"}),
	}

	cacheKey := employee.GetEmployeeListKey(testUserID)
	redisMock.ExpectGet(cacheKey).RedisNil()
	repo.EXPECT().FindAllByUser(gomock.Any(), testUserID).Return(empls, nil)

	expected := []employee.EmployeeResponse{
		{
			ID: empls[0].ID.String(), UserID: testUserID,
			Name: "Budi Santoso", Email: "budi@example.com", PhoneNumber: "0812",
			CustomFields: map[string]any{},
		},
		{
			ID: empls[1].ID.String(), UserID: testUserID,
			Name: "Citra Dewi", Email: "citra@example.com", PhoneNumber: "0813",
			CustomFields: map[string]any{"nickname": "cit"},
		},
	}
	cachedJSON, err := json.Marshal(expected)
	assert.NoError(t, err)
	redisMock.ExpectSet(cacheKey, cachedJSON, time.Hour).SetVal("OK")

	svc := employee.NewService(db, repo, registry, rdb, zap.NewNop())

	got, err := svc.List(context.Background(), testUserID, "")
	assert.NoError(t, err)
	assert.Equal(t, expected, got)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmployeeService_List_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := employeemock.NewMockRepository(ctrl)
	registry := schemamock.NewMockRegistry(ctrl)

	cached := []employee.EmployeeResponse{
		{
			ID: uuid.NewString(), UserID: testUserID,
			Name: "Budi Santoso", Email: "budi@example.com", PhoneNumber: "0812",
			CustomFields: map[string]any{},
		},
	}
	payload, err := json.Marshal(cached)
	assert.NoError(t, err)

	redisMock.ExpectGet(employee.GetEmployeeListKey(testUserID)).SetVal(string(payload))
	// Tidak ada panggilan repo sama sekali saat cache hit

	svc := employee.NewService(db, repo, registry, rdb, zap.NewNop())

	got, err := svc.List(context.Background(), testUserID, "")
	assert.NoError(t, err)
	assert.Equal(t, cached, got)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmployeeService_List_SearchFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := employeemock.NewMockRepository(ctrl)
	registry := schemamock.NewMockRegistry(ctrl)

	cached := []employee.EmployeeResponse{
		{ID: uuid.NewString(), UserID: testUserID, Name: "Budi Santoso", Email: "budi@example.com", PhoneNumber: "0812", CustomFields: map[string]any{}},
		{ID: uuid.NewString(), UserID: testUserID, Name: "Citra Dewi", Email: "citra@example.com", PhoneNumber: "0813", CustomFields: map[string]any{}},
	}
	payload, err := json.Marshal(cached)
	assert.NoError(t, err)

	svc := employee.NewService(db, repo, registry, rdb, zap.NewNop())

	t.Run("matches name case-insensitively", func(t *testing.T) {
		redisMock.ExpectGet(employee.GetEmployeeListKey(testUserID)).SetVal(string(payload))

		got, err := svc.List(context.Background(), testUserID, "CITRA")
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Citra Dewi", got[0].Name)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		redisMock.ExpectGet(employee.GetEmployeeListKey(testUserID)).SetVal(string(payload))

		got, err := svc.List(context.Background(), testUserID, "nobody")
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestEmployeeService_GetByID_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, _ := redismock.NewClientMock()
	repo := employeemock.NewMockRepository(ctrl)
	registry := schemamock.NewMockRegistry(ctrl)

	id := uuid.NewString()
	repo.EXPECT().
		FindByIDAndUser(gomock.Any(), testUserID, id).
		Return(nil, gorm.ErrRecordNotFound)

	svc := employee.NewService(db, repo, registry, rdb, zap.NewNop())

	_, err = svc.GetByID(context.Background(), testUserID, id)
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestEmployeeService_Update_PartialLeavesOtherFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := employeemock.NewMockRepository(ctrl)
	registry := schemamock.NewMockRegistry(ctrl)

	existing := newEmployee(testUserID, "Budi Santoso", "budi@example.com", "0812", datatypes.JSONMap{"nickname": "bud"})
	id := existing.ID.String()

	repo.EXPECT().FindByIDAndUser(gomock.Any(), testUserID, id).Return(&existing, nil)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, empl *employee.Employee) error {
			assert.Equal(t, "Budi Revisi", empl.Name)
			assert.Equal(t, "budi@example.com", empl.Email)
			assert.Equal(t, "0812", empl.PhoneNumber)
			assert.Equal(t, datatypes.JSONMap{"nickname": "bud"}, empl.CustomFields)
			return nil
		})
	redisMock.ExpectDel(employee.GetEmployeeListKey(testUserID)).SetVal(1)

	svc := employee.NewService(db, repo, registry, rdb, zap.NewNop())

	name := "Budi Revisi"
	resp, err := svc.Update(context.Background(), testUserID, id, employee.UpdateEmployeeRequest{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "Budi Revisi", resp.Name)
	assert.Equal(t, "budi@example.com", resp.Email)
	assert.Equal(t, map[string]any{"nickname": "bud"}, resp.CustomFields)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmployeeService_Update_BlankSuppliedField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, _ := redismock.NewClientMock()
	repo := employeemock.NewMockRepository(ctrl)
	registry := schemamock.NewMockRegistry(ctrl)

	existing := newEmployee(testUserID, "Budi", "budi@example.com", "0812", nil)
	id := existing.ID.String()

	repo.EXPECT().FindByIDAndUser(gomock.Any(), testUserID, id).Return(&existing, nil)

	svc := employee.NewService(db, repo, registry, rdb, zap.NewNop())

	blank := "   "
	_, err = svc.Update(context.Background(), testUserID, id, employee.UpdateEmployeeRequest{Name: &blank})
	assert.ErrorIs(t, err, employeeerrors.ErrMissingRequiredFields)
}

func TestEmployeeService_Delete(t *testing.T) {
	t.Run("success invalidates cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, redisMock := redismock.NewClientMock()
		repo := employeemock.NewMockRepository(ctrl)
		registry := schemamock.NewMockRegistry(ctrl)

		id := uuid.NewString()

		dbMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().Delete(gomock.Any(), testUserID, id).Return(int64(1), nil)
		dbMock.ExpectCommit()
		redisMock.ExpectDel(employee.GetEmployeeListKey(testUserID)).SetVal(1)

		svc := employee.NewService(db, repo, registry, rdb, zap.NewNop())

		assert.NoError(t, svc.Delete(context.Background(), testUserID, id))
		assert.NoError(t, dbMock.ExpectationsWereMet())
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, _ := redismock.NewClientMock()
		repo := employeemock.NewMockRepository(ctrl)
		registry := schemamock.NewMockRegistry(ctrl)

		id := uuid.NewString()

		dbMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().Delete(gomock.Any(), testUserID, id).Return(int64(0), nil)
		dbMock.ExpectRollback()

		svc := employee.NewService(db, repo, registry, rdb, zap.NewNop())

		err = svc.Delete(context.Background(), testUserID, id)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
