package handler

import (
	"testing"

	"cerrajeria_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func TestRegisterRoutes_Paths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := New(nil, validator.New())
	h.RegisterRoutes(engine.Group("/api/v1/auth"))

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/auth/signup",
		"POST /api/v1/auth/signin",
		"POST /api/v1/auth/refresh",
		"POST /api/v1/auth/signout",
	} {
		if !registered[want] {
			t.Errorf("route %s not registered", want)
		}
	}
}
