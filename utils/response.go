package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/golog"
	"github.com/kataras/iris/v12"
)

type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	ctx.JSON(iris.Map{
		"data":  data,
		"meta":  PageMeta{Page: page, PerPage: perPage, Total: total},
		"links": iris.Map{},
	})
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StopWithJSON(status, iris.Map{"error": code, "message": message, "detail": message})
}

// WriteError renders err with the status of its kind. Internal errors are
// logged and replaced with a generic message.
func WriteError(ctx iris.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}
	if appErr.Kind == KindInternal {
		golog.Errorf("%s %s: %v", ctx.Method(), ctx.Path(), err)
	}

	body := iris.Map{
		"error":   appErr.Kind.Code(),
		"message": appErr.Message,
		"detail":  appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	ctx.StopWithJSON(appErr.Kind.Status(), body)
}

// HandleValidationErrors reports a failed ctx.ReadJSON as ValidationFailed,
// listing the offending fields when the validator rejected the body.
func HandleValidationErrors(err error, ctx iris.Context) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		WriteError(ctx, validationError(verrs))
		return
	}
	WriteError(ctx, ValidationFailed("Invalid request body"))
}

func validationError(verrs validator.ValidationErrors) *AppError {
	fields := make(map[string]string, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		fields[name] = fe.Tag()
		names = append(names, name)
	}
	appErr := ValidationFailed("Invalid fields: " + strings.Join(names, ", "))
	appErr.Fields = fields
	return appErr
}

// NewValidator returns a validator that reports json field names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}
