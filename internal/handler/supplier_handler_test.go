package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galactly/onboarding-service/internal/model"
)

type memSupplierStore struct {
	savedID    string
	savedPatch model.SupplierPatch
	calls      int
}

func (s *memSupplierStore) SaveSupplier(_ context.Context, supplierID string, patch model.SupplierPatch) error {
	s.savedID = supplierID
	s.savedPatch = patch
	s.calls++
	return nil
}

func TestUpdateSupplier(t *testing.T) {
	st := &memSupplierStore{}
	h := NewSupplierHandler(st)

	payload := `{"email":"owner@mill.example","displayName":"Mill & Co","emailVerified":true}`
	rec, body := doJSON(t, h.UpdateSupplier, http.MethodPut, "/", payload,
		withParams([]string{"supplierId"}, []string{"sup-1"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "sup-1", body["supplierId"])

	assert.Equal(t, "sup-1", st.savedID)
	require.NotNil(t, st.savedPatch.Email)
	assert.Equal(t, "owner@mill.example", *st.savedPatch.Email)
	require.NotNil(t, st.savedPatch.DisplayName)
	assert.Equal(t, "Mill & Co", *st.savedPatch.DisplayName)
	require.NotNil(t, st.savedPatch.EmailVerified)
	assert.True(t, *st.savedPatch.EmailVerified)
}

func TestUpdateSupplier_AbsentFieldsStayNil(t *testing.T) {
	st := &memSupplierStore{}
	h := NewSupplierHandler(st)

	rec, _ := doJSON(t, h.UpdateSupplier, http.MethodPut, "/", `{"domain":"mill.example"}`,
		withParams([]string{"supplierId"}, []string{"sup-1"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, st.calls)

	require.NotNil(t, st.savedPatch.Domain)
	assert.Equal(t, "mill.example", *st.savedPatch.Domain)
	assert.Nil(t, st.savedPatch.Email, "an absent field must not be written")
	assert.Nil(t, st.savedPatch.DisplayName)
	assert.Nil(t, st.savedPatch.EmailVerified)
	assert.Nil(t, st.savedPatch.DomainVerified)
}
