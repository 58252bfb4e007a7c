package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"products-api/internal/domain"
	"products-api/internal/transport/http/response"
)

func pathInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func bindDto(c *gin.Context) (domain.ProductDto, bool) {
	var dto domain.ProductDto
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return dto, false
	}
	if err := dto.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return dto, false
	}
	return dto, true
}
