package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "ninedelivery/stats-svc/internal/api/http"
	"ninedelivery/stats-svc/internal/domain"
	"ninedelivery/stats-svc/internal/mocks"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestRouter(mockSvc *mocks.StatsServiceInterface) *mux.Router {
	handler := httpapi.NewHandler(mockSvc)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestHandler_getPopular(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		prepareMocks func(*mocks.StatsServiceInterface)
		expectedCode int
		expectedBody string
	}{
		{
			name:   "success",
			target: "/api/restaurants/rest1/popular?period=today&limit=3",
			prepareMocks: func(m *mocks.StatsServiceInterface) {
				m.On("Popular", mock.Anything, "rest1", "today", 3).Return(domain.PopularityResponse{
					RestaurantID: "rest1", Period: "today", Items: []domain.ItemPopularity{{ItemID: "p1", Score: 2}},
				}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"item_id":"p1"`,
		},
		{
			name:   "bad_limit_uses_default",
			target: "/api/restaurants/rest1/popular?limit=abc",
			prepareMocks: func(m *mocks.StatsServiceInterface) {
				m.On("Popular", mock.Anything, "rest1", "", 0).Return(domain.PopularityResponse{RestaurantID: "rest1", Period: "all"}, nil).Once()
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "store_down",
			target: "/api/restaurants/rest1/popular",
			prepareMocks: func(m *mocks.StatsServiceInterface) {
				m.On("Popular", mock.Anything, "rest1", "", 0).Return(domain.PopularityResponse{}, assert.AnError).Once()
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockSvc := mocks.NewStatsServiceInterface(t)
			testCase.prepareMocks(mockSvc)

			recorder := httptest.NewRecorder()
			setupTestRouter(mockSvc).ServeHTTP(recorder, httptest.NewRequest("GET", testCase.target, nil))

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_health(t *testing.T) {
	recorder := httptest.NewRecorder()
	setupTestRouter(mocks.NewStatsServiceInterface(t)).ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"service":"stats-svc"`)
}
