package router

import "github.com/gin-gonic/gin"

// Module is a feature slice (users, places) that mounts its own routes under
// the shared API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
