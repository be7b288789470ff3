package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/angelmondragon/xpertech-quotes/internal/handoff"
	"github.com/angelmondragon/xpertech-quotes/internal/quote"
	"github.com/angelmondragon/xpertech-quotes/internal/wizard"
	pkgerrors "github.com/angelmondragon/xpertech-quotes/pkg/errors"
	"github.com/angelmondragon/xpertech-quotes/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, store Store) *service {
	t.Helper()
	c := catalog.Default()
	svc, err := NewService(store, wizard.NewEngine(c), handoff.NewComposer(c, "https://wa.me", "529621765599", "$"), metrics.NewQuoteMetrics(prometheus.NewRegistry()))
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = func() time.Time { return epoch }
	n := 0
	impl.newID = func() string {
		n++
		return fmt.Sprintf("session-%d", n)
	}
	return impl
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	c := catalog.Default()
	composer := handoff.NewComposer(c, "https://wa.me", "1", "$")

	_, err := NewService(nil, wizard.NewEngine(c), composer, nil)
	assert.Error(t, err)
	_, err = NewService(NewMemoryStore(time.Hour), nil, composer, nil)
	assert.Error(t, err)
	_, err = NewService(NewMemoryStore(time.Hour), wizard.NewEngine(c), nil, nil)
	assert.Error(t, err)
	_, err = NewService(NewMemoryStore(time.Hour), wizard.NewEngine(c), composer, nil)
	assert.NoError(t, err, "metrics are optional")
}

func walkToResults(t *testing.T, svc Service, id string) *wizard.Session {
	t.Helper()
	ctx := context.Background()
	updates := []struct {
		field quote.Field
		value string
	}{
		{quote.FieldNightVisionType, "infrared"},
		{quote.FieldTechnologyType, "ip"},
		{quote.FieldPhysicalType, "dome"},
		{quote.FieldResolution, "4mp"},
		{quote.FieldHasDVR, "no"},
		{quote.FieldStorage, "1tb"},
		{quote.FieldRemoteAccess, "yes"},
		{quote.FieldNeedsMonitor, "no"},
		{quote.FieldInstallationService, "complete"},
		{quote.FieldCableLength, "20"},
	}
	_, err := svc.AdjustCount(ctx, id, quote.FieldInteriorCount, 2)
	require.NoError(t, err)
	_, err = svc.AdjustCount(ctx, id, quote.FieldExteriorCount, 1)
	require.NoError(t, err)
	for _, u := range updates {
		_, err := svc.UpdateField(ctx, id, u.field, u.value)
		require.NoError(t, err)
	}
	var sess *wizard.Session
	for i := 0; i < 10; i++ {
		sess, err = svc.Advance(ctx, id)
		require.NoError(t, err)
	}
	return sess
}

func TestServiceWizardFlow(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore(time.Hour))

	sess, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "session-1", sess.ID)

	_, err = svc.Handoff(ctx, sess.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict), "no hand-off before the quotation")

	done := walkToResults(t, svc, sess.ID)
	assert.Equal(t, 11, done.Current)
	require.NotNil(t, done.Result)
	assert.Equal(t, "14100", done.Result.Total.String())

	stored, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 11, stored.Current)
	assert.True(t, stored.Result.Total.Equal(done.Result.Total))

	h, err := svc.Handoff(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(h.Message, "Cotización estimada: $14,100.00"))
	assert.True(t, strings.HasPrefix(h.URL, "https://wa.me/529621765599?text="))

	retreated, err := svc.Retreat(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, retreated.Current)
	assert.NotNil(t, retreated.Result)

	jumped, err := svc.JumpTo(ctx, sess.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, jumped.Current)

	require.NoError(t, svc.End(ctx, sess.ID))
	_, err = svc.Get(ctx, sess.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.True(t, pkgerrors.IsCode(svc.End(ctx, sess.ID), pkgerrors.CodeNotFound))
}

func TestServiceRejectedNavigationIsNotSaved(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore(time.Hour))
	sess, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Advance(ctx, sess.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	_, err = svc.JumpTo(ctx, sess.ID, 5)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	_, err = svc.UpdateField(ctx, sess.ID, quote.FieldInteriorCount, "-2")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	stored, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Current)
	assert.Equal(t, 0, stored.Config.InteriorCount)
}

func TestServiceUnknownSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore(time.Hour))

	_, err := svc.Advance(ctx, "nope")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	_, err = svc.UpdateField(ctx, "nope", quote.FieldLocation, "x")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	_, err = svc.Handoff(ctx, "nope")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServiceStoreFailuresAreDependencyErrors(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	svc := newTestService(t, NewRedisStore(kv, time.Hour))

	kv.setErr = errors.New("connection refused")
	_, err := svc.Create(ctx)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))

	kv.setErr = nil
	sess, err := svc.Create(ctx)
	require.NoError(t, err)

	kv.getErr = errors.New("connection reset")
	_, err = svc.Get(ctx, sess.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestServiceSerializesConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore(time.Hour))
	sess, err := svc.Create(ctx)
	require.NoError(t, err)

	const workers = 25
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.AdjustCount(ctx, sess.ID, quote.FieldInteriorCount, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, stored.Config.InteriorCount, "no lost updates")
	assert.Equal(t, 0, svc.locks.(*keyedMutex).size(), "locks are released")
}
