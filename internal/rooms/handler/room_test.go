package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoomService struct {
	getAllFunc  func(ctx context.Context) ([]*model.Room, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Room, error)
}

func (f *fakeRoomService) GetAll(ctx context.Context) ([]*model.Room, error) {
	return f.getAllFunc(ctx)
}

func (f *fakeRoomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	return f.getByIDFunc(ctx, id)
}

func newRouter(svc *fakeRoomService) *httprouter.Router {
	router := httprouter.New()
	NewRoomHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestGetAll(t *testing.T) {
	router := newRouter(&fakeRoomService{
		getAllFunc: func(context.Context) ([]*model.Room, error) {
			return []*model.Room{{ID: "101", Name: "Cabin 1", BaseHourlyRate: 100, Capacity: 4}}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []model.Room `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "101", body.Data[0].ID)
	assert.Equal(t, 100.0, body.Data[0].BaseHourlyRate)
}

func TestGetByID_NotFound(t *testing.T) {
	var gotID string
	router := newRouter(&fakeRoomService{
		getByIDFunc: func(_ context.Context, id string) (*model.Room, error) {
			gotID = id
			return nil, apperrors.NotFound("Room")
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/id/999", nil))

	assert.Equal(t, "999", gotID)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAll_MasksInternalErrors(t *testing.T) {
	router := newRouter(&fakeRoomService{
		getAllFunc: func(context.Context) ([]*model.Room, error) {
			return nil, apperrors.Internal("Failed to retrieve rooms", errors.New("dial tcp: refused"))
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Error)
	assert.NotContains(t, rec.Body.String(), "refused")
}
