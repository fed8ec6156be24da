package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/seanazu/value-hunter/customerrors"
	"github.com/seanazu/value-hunter/middleware"
	"github.com/seanazu/value-hunter/model"
	"github.com/seanazu/value-hunter/service"
)

// SessionController is the JSON face of a form session, for the React front end.
type SessionController struct {
	sessionService service.SessionService
	presetService  service.PresetService
}

func NewSessionController(ss service.SessionService, ps service.PresetService) *SessionController {
	return &SessionController{
		sessionService: ss,
		presetService:  ps,
	}
}

func (ctrl *SessionController) RegisterRoutes(api huma.API) {
	mws := huma.Middlewares{middleware.HumaNoStore, middleware.HumaSessionLogger}

	huma.Register(api, huma.Operation{
		OperationID:   "create-session",
		Method:        http.MethodPost,
		Path:          "/api/sessions",
		Summary:       "Create a form session with default filters",
		DefaultStatus: http.StatusCreated,
		Middlewares:   mws,
		Tags:          []string{"Screener"},
	}, ctrl.createSession)

	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}",
		Summary:     "Get filters and request lifecycle",
		Middlewares: mws,
		Tags:        []string{"Screener"},
	}, ctrl.getSession)

	huma.Register(api, huma.Operation{
		OperationID: "update-field",
		Method:      http.MethodPatch,
		Path:        "/api/sessions/{id}/fields",
		Summary:     "Replace a single filter",
		Middlewares: mws,
		Tags:        []string{"Screener"},
	}, ctrl.updateField)

	huma.Register(api, huma.Operation{
		OperationID: "submit-session",
		Method:      http.MethodPost,
		Path:        "/api/sessions/{id}/submit",
		Summary:     "Validate the filters and run the screener",
		Middlewares: mws,
		Tags:        []string{"Screener"},
	}, ctrl.submit)

	huma.Register(api, huma.Operation{
		OperationID: "apply-preset",
		Method:      http.MethodPost,
		Path:        "/api/sessions/{id}/presets/{name}",
		Summary:     "Load a saved preset into the form",
		Middlewares: mws,
		Tags:        []string{"Screener"},
	}, ctrl.applyPreset)

	huma.Register(api, huma.Operation{
		OperationID: "close-session",
		Method:      http.MethodDelete,
		Path:        "/api/sessions/{id}",
		Summary:     "Tear the form session down",
		Middlewares: mws,
		Tags:        []string{"Screener"},
	}, ctrl.closeSession)
}

func (ctrl *SessionController) createSession(ctx context.Context, input *struct{}) (*model.SessionOutput, error) {
	form := ctrl.sessionService.Create()
	return sessionOutput(form), nil
}

func (ctrl *SessionController) getSession(ctx context.Context, input *model.SessionInput) (*model.SessionOutput, error) {
	form, err := ctrl.find(input.ID)
	if err != nil {
		return nil, err
	}
	return sessionOutput(form), nil
}

func (ctrl *SessionController) updateField(ctx context.Context, input *model.UpdateFieldInput) (*model.SessionOutput, error) {
	form, err := ctrl.find(input.ID)
	if err != nil {
		return nil, err
	}

	if err := form.UpdateField(input.Body.Field, input.Body.Value); err != nil {
		if errors.Is(err, customerrors.ErrSessionClosed) {
			return nil, huma.Error404NotFound(err.Error())
		}
		return nil, huma.Error400BadRequest(err.Error())
	}
	return sessionOutput(form), nil
}

// submit never reports the screening outcome as an HTTP error; it lives in the view.
func (ctrl *SessionController) submit(ctx context.Context, input *model.SubmitInput) (*model.SessionOutput, error) {
	form, err := ctrl.find(input.ID)
	if err != nil {
		return nil, err
	}

	if input.Wait {
		err = form.Submit(context.WithoutCancel(ctx))
	} else {
		err = form.SubmitAsync(context.WithoutCancel(ctx))
	}
	if errors.Is(err, customerrors.ErrSessionClosed) {
		return nil, huma.Error404NotFound(err.Error())
	}
	return sessionOutput(form), nil
}

func (ctrl *SessionController) applyPreset(ctx context.Context, input *model.ApplyPresetInput) (*model.SessionOutput, error) {
	form, err := ctrl.find(input.ID)
	if err != nil {
		return nil, err
	}

	if err := ctrl.presetService.ApplyPreset(form, input.Name); err != nil {
		if errors.Is(err, customerrors.ErrPresetNotFound) {
			return nil, huma.Error404NotFound(err.Error())
		}
		return nil, huma.Error400BadRequest(err.Error())
	}
	return sessionOutput(form), nil
}

func (ctrl *SessionController) closeSession(ctx context.Context, input *model.SessionInput) (*model.DefaultResponse, error) {
	if _, err := ctrl.find(input.ID); err != nil {
		return nil, err
	}
	ctrl.sessionService.Close(input.ID)
	return NewResponse(nil, "Session closed"), nil
}

func (ctrl *SessionController) find(id string) (service.ScreenerFormController, error) {
	form, err := ctrl.sessionService.Touch(id)
	if err != nil {
		return nil, huma.Error404NotFound(customerrors.ErrSessionNotFound.Error())
	}
	return form, nil
}

func sessionOutput(form service.ScreenerFormController) *model.SessionOutput {
	return &model.SessionOutput{
		Body: model.SessionDto{
			ID:   form.ID(),
			View: form.View(),
		},
	}
}
