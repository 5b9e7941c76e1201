package customfield_test

import (
	"context"
	"testing"

	"github.com/ASARUDHEEN-MP/Employee-managment/internal/customfield"
	customfielderrors "github.com/ASARUDHEEN-MP/Employee-managment/internal/customfield/errors"
	customfieldmock "github.com/ASARUDHEEN-MP/Employee-managment/internal/customfield/mock"
	"github.com/ASARUDHEEN-MP/Employee-managment/internal/employee"
	employeemock "github.com/ASARUDHEEN-MP/Employee-managment/internal/employee/mock"

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

func TestCustomFieldService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, _ := redismock.NewClientMock()
		repo := customfieldmock.NewMockRepository(ctrl)
		employees := employeemock.NewMockRepository(ctrl)

		repo.EXPECT().NameExists(gomock.Any(), testUserID, "nickname").Return(false, nil)
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, def *customfield.CustomFieldDefinition) error {
				assert.Equal(t, testUserID, def.UserID.String())
				assert.Equal(t, "nickname", def.FieldName)
				assert.Equal(t, "text", def.FieldType)
				return nil
			})

		svc := customfield.NewService(db, repo, employees, rdb, zap.NewNop())

		resp, err := svc.Create(context.Background(), testUserID, customfield.CreateCustomFieldRequest{
			FieldName: "nickname",
			FieldType: "text",
		})
		assert.NoError(t, err)
		assert.Equal(t, "nickname", resp.FieldName)
		assert.Equal(t, testUserID, resp.UserID)
	})

	t.Run("duplicate name for same user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, _ := redismock.NewClientMock()
		repo := customfieldmock.NewMockRepository(ctrl)
		employees := employeemock.NewMockRepository(ctrl)

		repo.EXPECT().NameExists(gomock.Any(), testUserID, "nickname").Return(true, nil)

		svc := customfield.NewService(db, repo, employees, rdb, zap.NewNop())

		_, err = svc.Create(context.Background(), testUserID, customfield.CreateCustomFieldRequest{
			FieldName: "nickname",
			FieldType: "text",
		})
		assert.ErrorIs(t, err, customfielderrors.ErrFieldNameAlreadyExists)
	})
}

func TestCustomFieldService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, _ := redismock.NewClientMock()
	repo := customfieldmock.NewMockRepository(ctrl)
	employees := employeemock.NewMockRepository(ctrl)

	defs := []customfield.CustomFieldDefinition{
		{ID: uuid.New(), UserID: uuid.MustParse(testUserID), FieldName: "nickname", FieldType: "text"},
		{ID: uuid.New(), UserID: uuid.MustParse(testUserID), FieldName: "shoe_size", FieldType: "number"},
	}
	repo.EXPECT().FindAllByUser(gomock.Any(), testUserID).Return(defs, nil)

	svc := customfield.NewService(db, repo, employees, rdb, zap.NewNop())

	got, err := svc.List(context.Background(), testUserID)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "nickname", got[0].FieldName)
	assert.Equal(t, "shoe_size", got[1].FieldName)
}

func TestCustomFieldService_Delete_CascadesToEmployeeBags(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := customfieldmock.NewMockRepository(ctrl)
	employees := employeemock.NewMockRepository(ctrl)

	fieldID := uuid.New()
	def := &customfield.CustomFieldDefinition{
		ID:        fieldID,
		UserID:    uuid.MustParse(testUserID),
		FieldName: "nickname",
		FieldType: "text",
	}
	repo.EXPECT().FindByIDAndUser(gomock.Any(), testUserID, fieldID.String()).Return(def, nil)

	withKey1 := employee.EmployeeCustomFields{
		ID:           uuid.New(),
		CustomFields: datatypes.JSONMap{"nickname": "bud", "shoe_size": 42},
	}
	withKey2 := employee.EmployeeCustomFields{
		ID:           uuid.New(),
		CustomFields: datatypes.JSONMap{"nickname": "cit"},
	}
	withoutKey := employee.EmployeeCustomFields{
		ID:           uuid.New(),
		CustomFields: datatypes.JSONMap{"shoe_size": 40},
	}

	dbMock.ExpectBegin()
	employees.EXPECT().WithTx(gomock.Any()).Return(employees)
	employees.EXPECT().
		LockCustomFieldsByUser(gomock.Any(), testUserID).
		Return([]employee.EmployeeCustomFields{withKey1, withKey2, withoutKey}, nil)

	// Hanya baris yang benar-benar memuat key yang ditulis ulang
	employees.EXPECT().
		UpdateCustomFields(gomock.Any(), withKey1.ID.String(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fields datatypes.JSONMap) error {
			assert.NotContains(t, fields, "nickname")
			assert.Contains(t, fields, "shoe_size")
			return nil
		})
	employees.EXPECT().
		UpdateCustomFields(gomock.Any(), withKey2.ID.String(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fields datatypes.JSONMap) error {
			assert.Empty(t, fields)
			return nil
		})

	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().Delete(gomock.Any(), testUserID, fieldID.String()).Return(int64(1), nil)
	dbMock.ExpectCommit()

	redisMock.ExpectDel(employee.GetEmployeeListKey(testUserID)).SetVal(1)

	svc := customfield.NewService(db, repo, employees, rdb, zap.NewNop())

	assert.NoError(t, svc.Delete(context.Background(), testUserID, fieldID.String()))
	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCustomFieldService_Delete_RollsBackOnCascadeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()
	repo := customfieldmock.NewMockRepository(ctrl)
	employees := employeemock.NewMockRepository(ctrl)

	fieldID := uuid.New()
	def := &customfield.CustomFieldDefinition{
		ID:        fieldID,
		UserID:    uuid.MustParse(testUserID),
		FieldName: "nickname",
		FieldType: "text",
	}
	repo.EXPECT().FindByIDAndUser(gomock.Any(), testUserID, fieldID.String()).Return(def, nil)

	row := employee.EmployeeCustomFields{
		ID:           uuid.New(),
		CustomFields: datatypes.JSONMap{"nickname": "bud"},
	}

	dbMock.ExpectBegin()
	employees.EXPECT().WithTx(gomock.Any()).Return(employees)
	employees.EXPECT().
		LockCustomFieldsByUser(gomock.Any(), testUserID).
		Return([]employee.EmployeeCustomFields{row}, nil)
	employees.EXPECT().
		UpdateCustomFields(gomock.Any(), row.ID.String(), gomock.Any()).
		Return(assert.AnError)
	dbMock.ExpectRollback()
	// Definisi tidak boleh tersentuh dan cache tidak boleh diinvalidasi

	svc := customfield.NewService(db, repo, employees, rdb, zap.NewNop())

	err = svc.Delete(context.Background(), testUserID, fieldID.String())
	assert.Error(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCustomFieldService_Delete_NotFound(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, _ := redismock.NewClientMock()
		repo := customfieldmock.NewMockRepository(ctrl)
		employees := employeemock.NewMockRepository(ctrl)

		id := uuid.NewString()
		repo.EXPECT().
			FindByIDAndUser(gomock.Any(), testUserID, id).
			Return(nil, gorm.ErrRecordNotFound)

		svc := customfield.NewService(db, repo, employees, rdb, zap.NewNop())

		err = svc.Delete(context.Background(), testUserID, id)
		assert.ErrorIs(t, err, customfielderrors.ErrCustomFieldNotFound)
	})

	t.Run("deleted concurrently between resolve and tx", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		db, dbMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		rdb, _ := redismock.NewClientMock()
		repo := customfieldmock.NewMockRepository(ctrl)
		employees := employeemock.NewMockRepository(ctrl)

		fieldID := uuid.New()
		def := &customfield.CustomFieldDefinition{
			ID:        fieldID,
			UserID:    uuid.MustParse(testUserID),
			FieldName: "nickname",
			FieldType: "text",
		}
		repo.EXPECT().FindByIDAndUser(gomock.Any(), testUserID, fieldID.String()).Return(def, nil)

		dbMock.ExpectBegin()
		employees.EXPECT().WithTx(gomock.Any()).Return(employees)
		employees.EXPECT().
			LockCustomFieldsByUser(gomock.Any(), testUserID).
			Return(nil, nil)
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().Delete(gomock.Any(), testUserID, fieldID.String()).Return(int64(0), nil)
		dbMock.ExpectRollback()

		svc := customfield.NewService(db, repo, employees, rdb, zap.NewNop())

		err = svc.Delete(context.Background(), testUserID, fieldID.String())
		assert.ErrorIs(t, err, customfielderrors.ErrCustomFieldNotFound)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}
