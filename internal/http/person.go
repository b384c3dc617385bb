package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lumonhq/persons/internal/domain"
	"github.com/lumonhq/persons/internal/service"
	"github.com/lumonhq/persons/pkg/client"
	"github.com/lumonhq/persons/pkg/httpx"
	"github.com/lumonhq/persons/pkg/idx"
)

type PersonHandler struct {
	PersonService *service.PersonService
	Faults        *httpx.Mapper
}

func toPersonResponse(p domain.Person) client.PersonResponse {
	return client.PersonResponse{
		ID:        p.ID.String(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Address:   p.Address,
		Gender:    p.Gender,
		Enabled:   p.Enabled,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (h *PersonHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (service.PersonInput, bool) {
	var req client.PersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Faults.WriteError(w, r, fmt.Errorf("%w: %w", errBadRequestBody, err))
		return service.PersonInput{}, false
	}
	return service.PersonInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		Gender:    req.Gender,
		Enabled:   req.Enabled,
	}, true
}

// List returns all persons.
//
//	@Summary		List persons
//	@Tags			Persons
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		client.PersonResponse
//	@Failure		403	{object}	client.FaultResponse	"Missing or invalid access token"
//	@Router			/api/person/v1 [get].
func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	persons, err := h.PersonService.List(r.Context())
	if err != nil {
		h.Faults.WriteError(w, r, err)
		return
	}

	out := make([]client.PersonResponse, 0, len(persons))
	for _, p := range persons {
		out = append(out, toPersonResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Get returns a single person by id.
//
//	@Summary		Get a person
//	@Tags			Persons
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Person ID (ULID)"
//	@Success		200	{object}	client.PersonResponse
//	@Failure		400	{object}	client.FaultResponse	"Invalid id"
//	@Failure		404	{object}	client.FaultResponse	"Unknown id"
//	@Router			/api/person/v1/{id} [get].
func (h *PersonHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.PersonService.Get(r.Context(), idx.ID(r.PathValue("id")))
	if err != nil {
		h.Faults.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPersonResponse(p))
}

// Create adds a new person.
//
//	@Summary		Create a person
//	@Tags			Persons
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		client.PersonRequest	true	"Person fields"
//	@Success		201		{object}	client.PersonResponse
//	@Failure		400		{object}	client.FaultResponse	"Missing required fields"
//	@Router			/api/person/v1 [post].
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	p, err := h.PersonService.Create(r.Context(), in)
	if err != nil {
		h.Faults.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toPersonResponse(p))
}

// Update replaces the writable fields of a person.
//
//	@Summary		Update a person
//	@Tags			Persons
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Person ID (ULID)"
//	@Param			request	body		client.PersonRequest	true	"Person fields"
//	@Success		200		{object}	client.PersonResponse
//	@Failure		400		{object}	client.FaultResponse	"Missing required fields"
//	@Failure		404		{object}	client.FaultResponse	"Unknown id"
//	@Router			/api/person/v1/{id} [put].
func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	p, err := h.PersonService.Update(r.Context(), idx.ID(r.PathValue("id")), in)
	if err != nil {
		h.Faults.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPersonResponse(p))
}

// Disable soft-deletes a person. The record stays readable with
// enabled=false.
//
//	@Summary		Disable a person
//	@Tags			Persons
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Person ID (ULID)"
//	@Success		200	{object}	client.PersonResponse	"Updated record"
//	@Failure		404	{object}	client.FaultResponse	"Unknown id"
//	@Router			/api/person/v1/{id} [patch].
func (h *PersonHandler) Disable(w http.ResponseWriter, r *http.Request) {
	p, err := h.PersonService.Disable(r.Context(), idx.ID(r.PathValue("id")))
	if err != nil {
		h.Faults.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPersonResponse(p))
}

// Delete permanently removes a person. Admin only.
//
//	@Summary		Delete a person
//	@Tags			Persons
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Person ID (ULID)"
//	@Success		204	"Deleted"
//	@Failure		403	{object}	client.FaultResponse	"Requires the admin role"
//	@Failure		404	{object}	client.FaultResponse	"Unknown id"
//	@Router			/api/person/v1/{id} [delete].
func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.PersonService.Delete(r.Context(), idx.ID(r.PathValue("id"))); err != nil {
		h.Faults.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
