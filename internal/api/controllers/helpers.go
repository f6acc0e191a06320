package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"edupanel/pkg/utils"
)

// caller returns the authenticated principal or writes a 401.
func caller(c *gin.Context) (utils.Principal, bool) {
	p, ok := utils.GetPrincipal(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
		return utils.Principal{}, false
	}
	return p, true
}

func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.ValidationMessage(err))
		return false
	}
	return true
}

func pageQuery(c *gin.Context) (page, pageSize int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.HandleServiceError(c, utils.ErrInvalidPage)
		return 0, 0, false
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.HandleServiceError(c, utils.ErrInvalidPageSize)
		return 0, 0, false
	}
	return page, pageSize, true
}
