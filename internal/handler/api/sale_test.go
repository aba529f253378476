//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"maspatas/internal/handler/api"
	"maspatas/internal/infra"
	"maspatas/internal/usecase/commands"
	"maspatas/internal/usecase/queries"
	"maspatas/tests/common/builder"
	commandsmock "maspatas/tests/mock/commands"
	queriesmock "maspatas/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SaleHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSaleCommands
	mockQueries  *queriesmock.MockSaleQueries
	handler      *api.SaleHandler
	userID       uuid.UUID
}

func (s *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSaleCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSaleQueries(s.mockCtrl)
	s.handler = api.NewSaleHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Stand-in for the auth middleware.
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	s.router.POST("/sales/sell", authMiddleware, s.handler.Sell)
	s.router.POST("/sales/:id/pay", authMiddleware, s.handler.Pay)
	s.router.POST("/sales/:id/cancel", authMiddleware, s.handler.Cancel)
	s.router.GET("/sales", authMiddleware, s.handler.List)
	s.router.GET("/sales/:id", authMiddleware, s.handler.Get)
}

func (s *SaleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSaleHandlerSuite(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}

func (s *SaleHandlerTestSuite) performJSON(method, url string, body any, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *SaleHandlerTestSuite) decodeBody(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func sellBody(requestID uuid.UUID) map[string]any {
	return map[string]any{
		"requestId": requestID.String(),
		"items": []map[string]any{
			{"productId": uuid.New().String(), "quantity": 2, "unitPrice": 10.0},
		},
	}
}

func (s *SaleHandlerTestSuite) TestSell() {
	url := "/sales/sell"
	requestID := uuid.New()

	s.Run("success: 201 for a new sale", func() {
		saleID := uuid.New()
		view := builder.NewSaleBuilder().BuildView(saleID, "pending")
		s.mockCommands.EXPECT().
			Sell(gomock.Any(), gomock.Any(), s.userID, requestID).
			Return(&commands.SaleResult{Sale: view}, nil)

		rec := s.performJSON(http.MethodPost, url, sellBody(requestID), true)

		s.Equal(http.StatusCreated, rec.Code)
		body := s.decodeBody(rec)
		s.Equal(saleID.String(), body["id"])
		s.Equal(float64(1), body["status"]) // pending wire code
	})

	s.Run("success: 200 when the request id replays a completed sale", func() {
		saleID := uuid.New()
		view := builder.NewSaleBuilder().BuildView(saleID, "pending")
		s.mockCommands.EXPECT().
			Sell(gomock.Any(), gomock.Any(), s.userID, requestID).
			Return(&commands.SaleResult{Sale: view, IsReplayed: true}, nil)

		rec := s.performJSON(http.MethodPost, url, sellBody(requestID), true)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal(saleID.String(), s.decodeBody(rec)["id"])
	})

	s.Run("error: 400 when requestId is missing", func() {
		body := sellBody(requestID)
		delete(body, "requestId")

		rec := s.performJSON(http.MethodPost, url, body, true)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 when items are empty", func() {
		body := sellBody(requestID)
		body["items"] = []map[string]any{}

		rec := s.performJSON(http.MethodPost, url, body, true)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := s.performJSON(http.MethodPost, url, sellBody(requestID), false)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{"product not found", commands.ErrProductNotFound, http.StatusNotFound},
			{"customer not found", commands.ErrCustomerNotFound, http.StatusNotFound},
			{"product inactive", commands.ErrProductInactive, http.StatusUnprocessableEntity},
			{"insufficient stock", commands.ErrInsufficientStock, http.StatusConflict},
			{"duplicate request", commands.ErrDuplicateRequest, http.StatusConflict},
			{"request in progress", commands.ErrRequestInProgress, http.StatusConflict},
			{"domain validation", commands.ErrDomainValidation, http.StatusUnprocessableEntity},
			{"unexpected", errors.New("boom"), http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().
					Sell(gomock.Any(), gomock.Any(), s.userID, requestID).
					Return(nil, tc.err)

				rec := s.performJSON(http.MethodPost, url, sellBody(requestID), true)
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})
}

func (s *SaleHandlerTestSuite) TestPay() {
	saleID := uuid.New()
	requestID := uuid.New()
	url := "/sales/" + saleID.String() + "/pay"
	payBody := map[string]any{
		"requestId": requestID.String(),
		"method":    "cash",
		"amount":    20.0,
	}

	s.Run("success: 200 with payment details", func() {
		view := builder.NewSaleBuilder().BuildView(saleID, "paid")
		method := "cash"
		view.PaymentMethod = &method

		s.mockCommands.EXPECT().
			Pay(gomock.Any(), saleID, commands.PayInput{Method: "cash", AmountCents: 2000}, s.userID, requestID).
			Return(&commands.SaleResult{Sale: view}, nil)

		rec := s.performJSON(http.MethodPost, url, payBody, true)

		s.Equal(http.StatusOK, rec.Code)
		body := s.decodeBody(rec)
		s.Equal(float64(2), body["status"]) // paid wire code
		s.Equal("Cash", body["paymentMethod"])
	})

	s.Run("error: 409 when the sale is already final", func() {
		s.mockCommands.EXPECT().
			Pay(gomock.Any(), saleID, gomock.Any(), s.userID, requestID).
			Return(nil, commands.ErrSaleAlreadyFinal)

		rec := s.performJSON(http.MethodPost, url, payBody, true)
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error: 422 on amount mismatch", func() {
		s.mockCommands.EXPECT().
			Pay(gomock.Any(), saleID, gomock.Any(), s.userID, requestID).
			Return(nil, commands.ErrAmountMismatch)

		rec := s.performJSON(http.MethodPost, url, payBody, true)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("error: 400 on a malformed sale id", func() {
		rec := s.performJSON(http.MethodPost, "/sales/not-a-uuid/pay", payBody, true)
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 when the method is missing", func() {
		body := map[string]any{"requestId": requestID.String(), "amount": 20.0}
		rec := s.performJSON(http.MethodPost, url, body, true)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *SaleHandlerTestSuite) TestCancel() {
	saleID := uuid.New()
	requestID := uuid.New()
	url := "/sales/" + saleID.String() + "/cancel"
	cancelBody := map[string]any{"requestId": requestID.String()}

	s.Run("success: 200 with the cancelled sale", func() {
		view := builder.NewSaleBuilder().BuildView(saleID, "cancelled")
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), saleID, s.userID, requestID).
			Return(&commands.SaleResult{Sale: view}, nil)

		rec := s.performJSON(http.MethodPost, url, cancelBody, true)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal(float64(3), s.decodeBody(rec)["status"]) // cancelled wire code
	})

	s.Run("error: 409 when already final", func() {
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), saleID, s.userID, requestID).
			Return(nil, commands.ErrSaleAlreadyFinal)

		rec := s.performJSON(http.MethodPost, url, cancelBody, true)
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error: 404 when the sale does not exist", func() {
		s.mockCommands.EXPECT().
			Cancel(gomock.Any(), saleID, s.userID, requestID).
			Return(nil, commands.ErrSaleNotFound)

		rec := s.performJSON(http.MethodPost, url, cancelBody, true)
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *SaleHandlerTestSuite) TestList() {
	s.Run("success: returns the ledger newest first", func() {
		newest := builder.NewSaleBuilder().BuildView(uuid.New(), "pending")
		oldest := builder.NewSaleBuilder().BuildView(uuid.New(), "paid")
		s.mockQueries.EXPECT().List(gomock.Any()).Return([]*queries.SaleView{newest, oldest}, nil)

		rec := s.performJSON(http.MethodGet, "/sales", nil, true)

		s.Equal(http.StatusOK, rec.Code)
		var body []map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Len(body, 2)
		s.Equal(newest.ID.String(), body[0]["id"])
	})

	s.Run("error: 500 when the read store fails", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection lost"))

		rec := s.performJSON(http.MethodGet, "/sales", nil, true)
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

func (s *SaleHandlerTestSuite) TestGet() {
	saleID := uuid.New()

	s.Run("success: returns one sale", func() {
		view := builder.NewSaleBuilder().BuildView(saleID, "pending")
		s.mockQueries.EXPECT().GetByID(gomock.Any(), saleID).Return(view, nil)

		rec := s.performJSON(http.MethodGet, "/sales/"+saleID.String(), nil, true)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal(saleID.String(), s.decodeBody(rec)["id"])
	})

	s.Run("error: 404 when missing", func() {
		notFound := infra.WrapRepoErr("sale not found", errors.New("no rows in result set"), infra.KindNotFound)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), saleID).Return(nil, notFound)

		rec := s.performJSON(http.MethodGet, "/sales/"+saleID.String(), nil, true)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("error: 500 when the store fails", func() {
		dbErr := infra.WrapRepoErr("get sale", errors.New("connection refused"), infra.KindDBFailure)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), saleID).Return(nil, dbErr)

		rec := s.performJSON(http.MethodGet, "/sales/"+saleID.String(), nil, true)
		s.Equal(http.StatusInternalServerError, rec.Code)
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := s.performJSON(http.MethodGet, "/sales/xyz", nil, true)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
