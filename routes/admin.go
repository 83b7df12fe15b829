package routes

import (
	"github.com/kataras/iris/v12"
)

const (
	defaultPerPage = 25
	maxPerPage     = 100
)

// pagination reads page and per_page, falling back to the defaults on bad input.
func pagination(ctx iris.Context) (page, perPage int) {
	page = ctx.URLParamIntDefault("page", 1)
	if page <= 0 {
		page = 1
	}
	perPage = ctx.URLParamIntDefault("per_page", defaultPerPage)
	if perPage <= 0 || perPage > maxPerPage {
		perPage = defaultPerPage
	}
	return page, perPage
}
