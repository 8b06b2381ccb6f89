package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

func newSiteFixture() (*SiteService, *fakeSiteStore) {
	sites := newFakeSiteStore()
	return NewSiteService(sites, 200), sites
}

func TestCreateSiteDefaultRadius(t *testing.T) {
	svc, _ := newSiteFixture()

	site, err := svc.Create(context.Background(), CreateSiteParams{
		Name:      "Bopal Tower A",
		Latitude:  testSiteLat,
		Longitude: testSiteLon,
	})

	require.NoError(t, err)
	assert.Equal(t, 200.0, site.RadiusM)
	assert.True(t, site.Active)
}

func TestCreateSiteExplicitRadius(t *testing.T) {
	svc, _ := newSiteFixture()

	site, err := svc.Create(context.Background(), CreateSiteParams{
		Name:      "Thaltej Yard",
		Latitude:  testSiteLat,
		Longitude: testSiteLon,
		RadiusM:   75,
	})

	require.NoError(t, err)
	assert.Equal(t, 75.0, site.RadiusM)
}

func TestCreateSiteNegativeRadius(t *testing.T) {
	svc, _ := newSiteFixture()

	_, err := svc.Create(context.Background(), CreateSiteParams{
		Name:      "Bad Site",
		Latitude:  testSiteLat,
		Longitude: testSiteLon,
		RadiusM:   -5,
	})

	assert.ErrorIs(t, err, pkgerrors.InvalidRadius)
}

func TestCreateSiteBadCoordinates(t *testing.T) {
	svc, _ := newSiteFixture()

	_, err := svc.Create(context.Background(), CreateSiteParams{Name: "Nowhere", Latitude: 120, Longitude: 0})

	assert.ErrorIs(t, err, pkgerrors.InvalidCoords)
}

func TestCreateSiteSupervisorPhoneEncrypted(t *testing.T) {
	svc, _ := newSiteFixture()

	site, err := svc.Create(context.Background(), CreateSiteParams{
		Name:            "Bopal Tower A",
		Latitude:        testSiteLat,
		Longitude:       testSiteLon,
		SupervisorPhone: "9876543210",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, site.SupervisorPhoneCipher)
	require.NotNil(t, site.SupervisorPhoneHash)
}

func TestCreateSiteBadSupervisorPhone(t *testing.T) {
	svc, _ := newSiteFixture()

	_, err := svc.Create(context.Background(), CreateSiteParams{
		Name:            "Bopal Tower A",
		Latitude:        testSiteLat,
		Longitude:       testSiteLon,
		SupervisorPhone: "12345",
	})

	assert.ErrorIs(t, err, pkgerrors.InvalidPhone)
}
