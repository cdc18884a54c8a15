package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orderpromise/otp/pkg/application/services"
	"github.com/orderpromise/otp/pkg/promise"
)

// Server exposes promise calculations over HTTP.
type Server struct {
	service  *services.PromiseService
	defaults promise.Rules
	now      func() time.Time
}

// NewServer creates an HTTP server over the promise service. The defaults
// apply to requests that omit rules; nowFn may be nil to use the wall clock.
func NewServer(service *services.PromiseService, defaults promise.Rules, nowFn func() time.Time) *Server {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Server{
		service:  service,
		defaults: defaults,
		now:      nowFn,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.handleHealth)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/promise", s.handleCalculatePromise)
		v1.GET("/items/stock", s.handleItemStock)
	}

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCalculatePromise(c *gin.Context) {
	start := time.Now()

	var dto promiseRequestDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		calculationsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, errorResponseDTO{Error: "invalid request body: " + err.Error()})
		return
	}

	req, err := dto.toDomain(s.defaults, s.now())
	if err != nil {
		calculationsTotal.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, errorResponseDTO{Error: err.Error()})
		return
	}

	result, err := s.service.CalculatePromise(c.Request.Context(), req)
	calculationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var unmet *promise.UnmetDesiredDateError
		switch {
		case errors.As(err, &unmet):
			calculationsTotal.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusConflict, unmetResponseDTO{
				Error:       unmet.Error(),
				PromiseDate: unmet.PromiseDate.Format(dateLayout),
				DaysLate:    unmet.DaysLate,
				Options:     unmet.Options,
			})
		case errors.Is(err, promise.ErrInvalidRequest):
			calculationsTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, errorResponseDTO{Error: err.Error()})
		default:
			calculationsTotal.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, errorResponseDTO{Error: err.Error()})
		}
		return
	}

	calculationsTotal.WithLabelValues("calculated").Inc()
	calculationConfidence.WithLabelValues(string(result.Confidence)).Inc()
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleItemStock(c *gin.Context) {
	itemCode := c.Query("item_code")
	if itemCode == "" {
		c.JSON(http.StatusBadRequest, errorResponseDTO{Error: "item_code query parameter is required"})
		return
	}

	records, err := s.service.ItemStock(promise.ItemCode(itemCode), c.Query("warehouse"))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, errorResponseDTO{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponseDTO{Error: err.Error()})
		return
	}

	response := stockResponseDTO{ItemCode: itemCode, Stock: make([]stockRecordDTO, 0, len(records))}
	for _, record := range records {
		response.Stock = append(response.Stock, stockRecordDTO{
			Warehouse:    record.Warehouse,
			AvailableQty: record.AvailableQty,
		})
	}
	c.JSON(http.StatusOK, response)
}
