package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	roomserrors "roomly/internal/rooms/errors"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoomRepository struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Room, error)
	findAllFunc  func(ctx context.Context) ([]*model.Room, error)
}

func (f *fakeRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	return f.findByIDFunc(ctx, id)
}

func (f *fakeRoomRepository) FindAll(ctx context.Context) ([]*model.Room, error) {
	return f.findAllFunc(ctx)
}

func newService(repo *fakeRoomRepository) RoomService {
	return NewRoomService(repo, &config.Config{Log: logger.Discard()})
}

func TestGetAll(t *testing.T) {
	rooms := []*model.Room{
		{ID: "101", Name: "Cabin 1", BaseHourlyRate: 100},
		{ID: "102", Name: "Cabin 2", BaseHourlyRate: 150},
	}
	svc := newService(&fakeRoomRepository{
		findAllFunc: func(context.Context) ([]*model.Room, error) { return rooms, nil },
	})

	got, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, rooms, got)
}

func TestGetAll_StoreFailure(t *testing.T) {
	storeErr := errors.New("connection reset")
	svc := newService(&fakeRoomRepository{
		findAllFunc: func(context.Context) ([]*model.Room, error) { return nil, storeErr },
	})

	_, err := svc.GetAll(context.Background())

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInternal, appErr.Code)
	assert.ErrorIs(t, err, storeErr)
}

func TestGetByID(t *testing.T) {
	storeErr := errors.New("connection reset")

	tests := []struct {
		name       string
		id         string
		repoErr    error
		wantCode   string
		wantStatus int
	}{
		{name: "found", id: "101"},
		{name: "empty id", id: "", wantCode: apperrors.CodeInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown room", id: "999", repoErr: roomserrors.ErrNotFound, wantCode: apperrors.CodeRoomNotFound, wantStatus: http.StatusNotFound},
		{name: "store failure", id: "101", repoErr: storeErr, wantCode: apperrors.CodeInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			svc := newService(&fakeRoomRepository{
				findByIDFunc: func(_ context.Context, id string) (*model.Room, error) {
					calls++
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return &model.Room{ID: id, Name: "Cabin 1"}, nil
				},
			})

			room, err := svc.GetByID(context.Background(), tt.id)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.id, room.ID)
				return
			}

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
			if tt.id == "" {
				assert.Zero(t, calls)
			}
		})
	}
}
