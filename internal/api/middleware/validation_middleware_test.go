package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type idBatchPayload struct {
	TaskIDs []string `json:"task_ids" validate:"required,min=1,dive,valid_uuid"`
}

func TestValidateUUIDRejectsMalformedIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation := NewValidationMiddleware()

	router := gin.New()
	router.POST("/batch", validation.ValidateRequest(&idBatchPayload{}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "ok"})
	})

	post := func(body string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w.Code
	}

	tests := []struct {
		name string
		id   string
		want int
	}{
		{"Well-formed id accepted", uuid.NewString(), http.StatusOK},
		{"Right shape but not hex rejected", "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz", http.StatusBadRequest},
		{"Truncated id rejected", "1234", http.StatusBadRequest},
		{"Dashes in the wrong places rejected", "123456789-12-3456-7890-123456789012", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post(fmt.Sprintf(`{"task_ids":[%q]}`, tt.id)))
		})
	}
}
