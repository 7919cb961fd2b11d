package machine

import (
	"errors"
	"testing"

	"github.com/desertwitch/reflectron/internal/catalog"
	"github.com/desertwitch/reflectron/internal/disk"
	"github.com/desertwitch/reflectron/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const scenarioText = `sda 500107862016 disk

Disk: sda
ID_BUS=ata
ID_SERIAL=WD-1234
DEVLINKS=/dev/disk/by-id/ata-WD-1234
`

func scenarioMachine() schema.Machine {
	return schema.Machine{
		Name: "m1",
		Disks: []schema.Disk{
			{
				Name:       "sda",
				Size:       500107862016,
				DeviceType: "disk",
				Attributes: map[string]string{
					"ID_BUS":    "ata",
					"ID_SERIAL": "WD-1234",
					"DEVLINKS":  "/dev/disk/by-id/ata-WD-1234",
				},
			},
		},
	}
}

type testHandler struct {
	*Handler
	settings *mockSettingsProvider
	machines *mockMachinesProvider
	volumes  *mockVolumeProvider
	prober   *mockProberProvider
}

func newTestHandler(t *testing.T) *testHandler {
	t.Helper()

	settings := newMockSettingsProvider(t)
	machines := newMockMachinesProvider(t)
	volumes := newMockVolumeProvider(t)

	return &testHandler{
		Handler:  NewHandler(settings, machines, volumes),
		settings: settings,
		machines: machines,
		volumes:  volumes,
		prober:   newMockProberProvider(t),
	}
}

// TestNew_Success_Scenario tests the whole pipeline for the scenario disk.
func TestNew_Success_Scenario(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	expected := scenarioMachine()

	h.settings.On("Require", catalog.KeyDiskPool).Return("tank", nil).Once()
	h.prober.On("Probe", mock.Anything).Return(scenarioText, nil).Once()
	h.machines.On("Create", mock.Anything, expected).Return(nil).Once()
	h.volumes.On("ProvisionMachine", mock.Anything, "tank", expected).Return(nil).Once()

	m, err := h.New(t.Context(), "m1", h.prober)

	require.NoError(t, err)
	assert.Equal(t, expected, *m)
}

// TestNew_Fail_MissingDevlinks tests that a disk without device links stops
// the pipeline before anything is recorded or created.
func TestNew_Fail_MissingDevlinks(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	h.settings.On("Require", catalog.KeyDiskPool).Return("tank", nil).Once()
	h.prober.On("Probe", mock.Anything).
		Return("sda 500107862016 disk\nDisk: sda\nID_BUS=ata\nID_SERIAL=WD-1234\n", nil).Once()

	_, err := h.New(t.Context(), "m1", h.prober)

	require.ErrorIs(t, err, disk.ErrMissingDevlinks)
	h.machines.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	h.volumes.AssertNotCalled(t, "ProvisionMachine", mock.Anything, mock.Anything, mock.Anything)
}

// TestNew_Fail_PoolUnset tests that the remote machine is not probed without
// a disk pool.
func TestNew_Fail_PoolUnset(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	h.settings.On("Require", catalog.KeyDiskPool).Return("", catalog.ErrSettingUnset).Once()

	_, err := h.New(t.Context(), "m1", h.prober)

	require.ErrorIs(t, err, catalog.ErrSettingUnset)
	h.prober.AssertNotCalled(t, "Probe", mock.Anything)
}

// TestNew_Fail_NoDisks tests that a machine without disks is not recorded.
func TestNew_Fail_NoDisks(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	h.settings.On("Require", catalog.KeyDiskPool).Return("tank", nil).Once()
	h.prober.On("Probe", mock.Anything).Return("\n", nil).Once()

	_, err := h.New(t.Context(), "m1", h.prober)

	require.ErrorIs(t, err, ErrNoDisks)
}

// TestNew_Fail_ProbeError tests that a failed probe is passed on.
func TestNew_Fail_ProbeError(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	probeErr := errors.New("connection refused")

	h.settings.On("Require", catalog.KeyDiskPool).Return("tank", nil).Once()
	h.prober.On("Probe", mock.Anything).Return("", probeErr).Once()

	_, err := h.New(t.Context(), "m1", h.prober)

	require.ErrorIs(t, err, probeErr)
}

// TestNew_Fail_Duplicate tests that nothing is provisioned for a refused
// machine.
func TestNew_Fail_Duplicate(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	h.settings.On("Require", catalog.KeyDiskPool).Return("tank", nil).Once()
	h.prober.On("Probe", mock.Anything).Return(scenarioText, nil).Once()
	h.machines.On("Create", mock.Anything, scenarioMachine()).Return(catalog.ErrMachineExists).Once()

	_, err := h.New(t.Context(), "m1", h.prober)

	require.ErrorIs(t, err, catalog.ErrMachineExists)
	h.volumes.AssertNotCalled(t, "ProvisionMachine", mock.Anything, mock.Anything, mock.Anything)
}

// TestProvision_Success tests provisioning of a recorded machine.
func TestProvision_Success(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	m := scenarioMachine()

	h.settings.On("Require", catalog.KeyDiskPool).Return("tank", nil).Once()
	h.machines.On("Get", "m1").Return(&m, true, nil).Once()
	h.volumes.On("ProvisionMachine", mock.Anything, "tank", m).Return(nil).Once()

	require.NoError(t, h.Provision(t.Context(), "m1"))
}

// TestProvision_Fail_NotFound tests that an unknown machine is reported.
func TestProvision_Fail_NotFound(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	h.settings.On("Require", catalog.KeyDiskPool).Return("tank", nil).Once()
	h.machines.On("Get", "m2").Return(nil, false, nil).Once()

	require.ErrorIs(t, h.Provision(t.Context(), "m2"), ErrNotFound)
}

// TestShow_Success tests the rendered machine description.
func TestShow_Success(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)
	m := scenarioMachine()

	h.machines.On("Get", "m1").Return(&m, true, nil).Once()

	out, err := h.Show("m1")

	require.NoError(t, err)
	assert.Contains(t, out, "m1: 1 disks, 466 GiB")
	assert.Contains(t, out, "Identity: ata-WD-1234")
	assert.Contains(t, out, "Label: unknown-unknown-unknown")
	assert.Contains(t, out, "DEVLINKS: /dev/disk/by-id/ata-WD-1234")
}

// TestShow_Fail_Corrupt tests that a corrupt record is passed on.
func TestShow_Fail_Corrupt(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	h.machines.On("Get", "m1").Return(nil, false, catalog.ErrCorruptRecord).Once()

	_, err := h.Show("m1")

	require.ErrorIs(t, err, catalog.ErrCorruptRecord)
}

// TestList_Success tests listing of recorded machines.
func TestList_Success(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t)

	h.machines.On("List").Return([]string{"m1", "m2"}, nil).Once()

	names, err := h.List()

	require.NoError(t, err)
	assert.Equal(t, []string{"m1", "m2"}, names)
}
