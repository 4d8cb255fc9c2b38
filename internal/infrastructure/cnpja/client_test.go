package cnpja_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consulta-cnpj/internal/domain"
	"github.com/jhoicas/consulta-cnpj/internal/infrastructure/cnpja"
)

func TestFetchRegistrations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/office/11222333000181", r.URL.Path)
		_, _ = w.Write([]byte(`{
		  "taxId": "11222333000181",
		  "registrations": [
		    {"number": "110042490114", "state": "SP", "enabled": true,
		     "status": {"id": 1, "text": "Sem restrição"}, "type": {"id": 1, "text": "IE Normal"}},
		    {"number": "0012345670012", "state": "MG", "enabled": false,
		     "status": {"id": 3, "text": "Baixada"}, "type": {"id": 1, "text": "IE Normal"}}
		  ]
		}`))
	}))
	defer srv.Close()

	c := cnpja.NewClient(srv.URL+"/office", time.Second, nil)
	regs, err := c.FetchRegistrations(context.Background(), "11222333000181")
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, "SP", regs[0].State)
	assert.Equal(t, "110042490114", regs[0].Number)
	assert.Equal(t, "Sem restrição", regs[0].Status)
	assert.Equal(t, "IE Normal", regs[0].Type)
	assert.True(t, regs[0].Enabled)
	assert.False(t, regs[1].Enabled)
}

func TestFetchRegistrations_SinInscripciones(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"taxId": "11222333000181"}`))
	}))
	defer srv.Close()

	regs, err := cnpja.NewClient(srv.URL, time.Second, nil).FetchRegistrations(context.Background(), "11222333000181")
	require.NoError(t, err)
	assert.Empty(t, regs)
}

func TestFetchRegistrations_Errores(t *testing.T) {
	for status, kind := range map[int]domain.LookupErrorKind{
		http.StatusNotFound:           domain.LookupNotFound,
		http.StatusTooManyRequests:    domain.LookupUnavailable,
		http.StatusServiceUnavailable: domain.LookupUnavailable,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		_, err := cnpja.NewClient(srv.URL, time.Second, nil).FetchRegistrations(context.Background(), "11222333000181")
		srv.Close()
		assert.Equal(t, kind, domain.LookupKind(err), "status %d", status)
	}
}
