package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/seanazu/value-hunter/customerrors"
	"github.com/seanazu/value-hunter/model"
	"github.com/seanazu/value-hunter/service"
	"github.com/seanazu/value-hunter/view"
)

const sessionCookie = "vh_session"

type ScreenerPageController struct {
	sessionService service.SessionService
	presetService  service.PresetService
	secureCookie   bool
	cookieMaxAge   int
}

func NewScreenerPageController(ss service.SessionService, ps service.PresetService, secureCookie bool, cookieMaxAge int) *ScreenerPageController {
	return &ScreenerPageController{
		sessionService: ss,
		presetService:  ps,
		secureCookie:   secureCookie,
		cookieMaxAge:   cookieMaxAge,
	}
}

func (ctrl *ScreenerPageController) RegisterRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/screener")
	})

	screener := r.Group("/screener")
	{
		screener.GET("", ctrl.showForm)
		screener.POST("", ctrl.submitForm)
		screener.POST("/preset", ctrl.applyPreset)
		screener.POST("/reset", ctrl.reset)
	}
}

func (ctrl *ScreenerPageController) showForm(c *gin.Context) {
	form := ctrl.session(c)
	ctrl.render(c, http.StatusOK, form, "")
}

// submitForm applies every posted field, then starts the screening request and
// redirects back so the page shows the Loading state.
func (ctrl *ScreenerPageController) submitForm(c *gin.Context) {
	form := ctrl.session(c)

	if err := applyPostedFields(c, form); err != nil {
		ctrl.render(c, http.StatusBadRequest, form, err.Error())
		return
	}

	// the request outlives this HTTP exchange; the lifecycle carries the outcome
	if err := form.SubmitAsync(context.WithoutCancel(c.Request.Context())); err != nil && !errors.Is(err, customerrors.ErrValidation) {
		log.Warn().Err(err).Str("session", form.ID()).Msg("submit rejected")
	}

	c.Redirect(http.StatusSeeOther, "/screener")
}

func (ctrl *ScreenerPageController) applyPreset(c *gin.Context) {
	form := ctrl.session(c)

	name := c.PostForm("preset")
	if err := ctrl.presetService.ApplyPreset(form, name); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, customerrors.ErrPresetNotFound) {
			status = http.StatusNotFound
		}
		ctrl.render(c, status, form, "Preset could not be loaded: "+name)
		return
	}

	c.Redirect(http.StatusSeeOther, "/screener")
}

func (ctrl *ScreenerPageController) reset(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		ctrl.sessionService.Close(id)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", ctrl.secureCookie, true)
	c.Redirect(http.StatusSeeOther, "/screener")
}

// session returns the form bound to the request's cookie, creating one when missing or expired.
func (ctrl *ScreenerPageController) session(c *gin.Context) service.ScreenerFormController {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		if form, err := ctrl.sessionService.Touch(id); err == nil {
			return form
		}
	}

	form := ctrl.sessionService.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, form.ID(), ctrl.cookieMaxAge, "/", "", ctrl.secureCookie, true)
	return form
}

func (ctrl *ScreenerPageController) render(c *gin.Context, status int, form service.ScreenerFormController, notice string) {
	page := view.NewPage(form.View(), ctrl.presetService.GetAllPresets())
	page.Notice = notice
	c.Header("Cache-Control", "no-store")
	c.HTML(status, view.ScreenerPage, page)
}

// applyPostedFields maps the HTML form onto UpdateField calls. An empty number or
// exchange makes the field absent. An unchecked box becomes false only once the
// field has a value, so never-touched flags stay out of the query.
func applyPostedFields(c *gin.Context, form service.ScreenerFormController) error {
	current := form.Filters()

	for _, field := range model.FieldOrder {
		kind, err := field.Kind()
		if err != nil {
			return err
		}

		switch kind {
		case model.KindBool:
			if c.PostForm(string(field)) == "true" {
				if err := form.UpdateField(field, true); err != nil {
					return err
				}
				continue
			}
			if v, _ := current.Get(field); v != nil {
				if err := form.UpdateField(field, false); err != nil {
					return err
				}
			}
		default:
			raw, posted := c.GetPostForm(string(field))
			if !posted {
				continue
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				if err := form.UpdateField(field, nil); err != nil {
					return err
				}
				continue
			}
			if err := form.UpdateField(field, raw); err != nil {
				return err
			}
		}
	}

	return nil
}
