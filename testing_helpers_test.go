// testing_helpers_test.go: Shared fixtures for the adapter test suite
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"fmt"
	"io"
	"sync"
	"testing"

	goerrors "github.com/agilira/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertErrorCode asserts that err carries the given structured error code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var structured *goerrors.Error
	require.ErrorAs(t, err, &structured)
	assert.Equal(t, goerrors.ErrorCode(code), structured.ErrorCode())
}

// stubPlugin is a minimal author surface with call counters, so tests can
// verify exactly which hooks the adapter reached.
type stubPlugin struct {
	initErr     error
	activateErr error
	startErr    error

	processStatus ProcessStatus

	initCalls       int
	destroyCalls    int
	activateCalls   int
	deactivateCalls int
	startCalls      int
	stopCalls       int
	processCalls    int

	lastSampleRate int
}

func newStubPlugin() *stubPlugin {
	return &stubPlugin{processStatus: ProcessContinue}
}

func (p *stubPlugin) Init() error {
	p.initCalls++
	return p.initErr
}

func (p *stubPlugin) Destroy() {
	p.destroyCalls++
}

func (p *stubPlugin) Activate(sampleRate int) error {
	p.activateCalls++
	if p.activateErr != nil {
		return p.activateErr
	}
	p.lastSampleRate = sampleRate
	return nil
}

func (p *stubPlugin) Deactivate() {
	p.deactivateCalls++
}

func (p *stubPlugin) StartProcessing() error {
	p.startCalls++
	return p.startErr
}

func (p *stubPlugin) StopProcessing() {
	p.stopCalls++
}

func (p *stubPlugin) Process(process *Process) ProcessStatus {
	p.processCalls++
	return p.processStatus
}

// paramStubPlugin adds a fixed parameter table on top of stubPlugin.
type paramStubPlugin struct {
	*stubPlugin

	params      []ParamInfo
	values      map[uint32]ParamValue
	infoCalls   int
	valueCalls  int
	setCalls    int
	enumCalls   int
	toTextCalls int
}

func newParamStubPlugin(params ...ParamInfo) *paramStubPlugin {
	values := make(map[uint32]ParamValue, len(params))
	for _, info := range params {
		values[info.ID] = info.DefaultValue
	}
	return &paramStubPlugin{
		stubPlugin: newStubPlugin(),
		params:     params,
		values:     values,
	}
}

func (p *paramStubPlugin) ParamsCount() int { return len(p.params) }

func (p *paramStubPlugin) ParamInfo(index int) (ParamInfo, error) {
	p.infoCalls++
	if index < 0 || index >= len(p.params) {
		return ParamInfo{}, fmt.Errorf("index %d out of stub range", index)
	}
	return p.params[index], nil
}

func (p *paramStubPlugin) ParamValue(paramID uint32) (ParamValue, error) {
	p.valueCalls++
	return p.values[paramID], nil
}

func (p *paramStubPlugin) ParamEnumValue(paramID uint32, valueIndex int) (ParamValue, error) {
	p.enumCalls++
	return ParamValue(valueIndex), nil
}

func (p *paramStubPlugin) SetParamValue(paramID uint32, value, modulation ParamValue) error {
	p.setCalls++
	p.values[paramID] = value
	return nil
}

func (p *paramStubPlugin) ParamValueToText(paramID uint32, value ParamValue) (string, error) {
	p.toTextCalls++
	return fmt.Sprintf("%.2f", float64(value)), nil
}

func (p *paramStubPlugin) ParamTextToValue(paramID uint32, text string) (ParamValue, error) {
	var v float64
	if _, err := fmt.Sscanf(text, "%f", &v); err != nil {
		return 0, err
	}
	return ParamValue(v), nil
}

// portStubPlugin adds a fixed audio port layout on top of stubPlugin.
type portStubPlugin struct {
	*stubPlugin

	inputs        []AudioPortInfo
	outputs       []AudioPortInfo
	configs       []AudioPortsConfig
	applyCalls    int
	lastConfigID  uint32
	infoCallCount int
}

func newPortStubPlugin() *portStubPlugin {
	return &portStubPlugin{
		stubPlugin: newStubPlugin(),
		inputs: []AudioPortInfo{
			{ID: 0, Name: "main in", ChannelCount: 2, ChannelMap: ChannelMapStereo, SampleSize: 32, IsMain: true},
		},
		outputs: []AudioPortInfo{
			{ID: 0, Name: "main out", ChannelCount: 2, ChannelMap: ChannelMapStereo, SampleSize: 32, IsMain: true},
		},
		configs: []AudioPortsConfig{
			{ID: 1, Name: "stereo", InputPortCount: 1, OutputPortCount: 1},
		},
	}
}

func (p *portStubPlugin) AudioPortsCount(isInput bool) int {
	if isInput {
		return len(p.inputs)
	}
	return len(p.outputs)
}

func (p *portStubPlugin) AudioPortsInfo(index int, isInput bool) (AudioPortInfo, error) {
	p.infoCallCount++
	if isInput {
		return p.inputs[index], nil
	}
	return p.outputs[index], nil
}

func (p *portStubPlugin) AudioPortsConfigCount() int { return len(p.configs) }

func (p *portStubPlugin) AudioPortsConfig(index int) (AudioPortsConfig, error) {
	return p.configs[index], nil
}

func (p *portStubPlugin) ApplyAudioPortsConfig(configID uint32) error {
	p.applyCalls++
	p.lastConfigID = configID
	return nil
}

// trackAwareStubPlugin records TrackInfoChanged notifications.
type trackAwareStubPlugin struct {
	*stubPlugin

	trackNotifications []bool
}

func newTrackAwareStubPlugin() *trackAwareStubPlugin {
	return &trackAwareStubPlugin{stubPlugin: newStubPlugin()}
}

func (p *trackAwareStubPlugin) TrackInfoChanged(channelsChanged bool) {
	p.trackNotifications = append(p.trackNotifications, channelsChanged)
}

// statefulStubPlugin adds state persistence on top of stubPlugin.
type statefulStubPlugin struct {
	*stubPlugin

	state []byte
}

func (p *statefulStubPlugin) SaveState(w io.Writer) error {
	_, err := w.Write(p.state)
	return err
}

func (p *statefulStubPlugin) LoadState(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	p.state = data
	return nil
}

// fakeThreadCheck is a controllable host thread-check capability.
type fakeThreadCheck struct {
	mu     sync.Mutex
	main   bool
	audio  bool
	checks int
}

func newFakeThreadCheck() *fakeThreadCheck {
	// Both classes report true by default so lifecycle tests can drive the
	// whole protocol from one goroutine.
	return &fakeThreadCheck{main: true, audio: true}
}

func (c *fakeThreadCheck) IsMainThread() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks++
	return c.main
}

func (c *fakeThreadCheck) IsAudioThread() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks++
	return c.audio
}

func (c *fakeThreadCheck) set(main, audio bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.main = main
	c.audio = audio
}

// captureHostLog records everything the plugin logs through the host.
type captureHostLog struct {
	mu      sync.Mutex
	entries []capturedLog
}

type capturedLog struct {
	severity LogSeverity
	msg      string
}

func (l *captureHostLog) Log(severity LogSeverity, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, capturedLog{severity: severity, msg: msg})
}

func (l *captureHostLog) countSeverity(severity LogSeverity) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e.severity == severity {
			n++
		}
	}
	return n
}

func (l *captureHostLog) misbehaviorCount() int {
	return l.countSeverity(SeverityHostMisbehaving)
}

// fakeTrackInfoHost is a controllable host track-info capability.
type fakeTrackInfoHost struct {
	info  TrackInfo
	ok    bool
	calls int
}

func (h *fakeTrackInfoHost) Get() (TrackInfo, bool) {
	h.calls++
	return h.info, h.ok
}

// fakeLatencyHost records latency-changed notifications.
type fakeLatencyHost struct{ calls int }

func (h *fakeLatencyHost) Changed() { h.calls++ }

// fakeHost is a configurable host handle. Extensions are looked up from the
// exts map; lookups are counted per id so tests can verify negotiation runs
// exactly once.
type fakeHost struct {
	exts    map[string]any
	lookups map[string]int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		exts:    make(map[string]any),
		lookups: make(map[string]int),
	}
}

func (h *fakeHost) Name() string    { return "goclap-test-host" }
func (h *fakeHost) Vendor() string  { return "AGILira" }
func (h *fakeHost) Version() string { return "1.0.0" }

func (h *fakeHost) Extension(id string) any {
	h.lookups[id]++
	return h.exts[id]
}

// testDiagConfig disables misbehavior flood control and uses the panicking
// fatal strategy so violations are observable without killing the test
// binary.
func testDiagConfig() DiagnosticsConfig {
	return DiagnosticsConfig{
		MinSeverity:          SeverityDebug,
		FatalStrategy:        FatalPanic,
		MisbehaviorLogWindow: 0,
	}
}

// newTestAdapter builds an adapter over the given plugin and host with a
// capturing host log and test-friendly diagnostics config.
func newTestAdapter(t *testing.T, plugin Plugin, host *fakeHost) (*PluginAdapter, *captureHostLog) {
	t.Helper()

	log := &captureHostLog{}
	host.exts[ExtLog] = log

	adapter, err := NewPluginAdapter(plugin, host,
		WithLogger(NewTestLogger()),
		WithDiagnosticsConfig(testDiagConfig()))
	require.NoError(t, err)

	t.Cleanup(func() {
		// Release the registry slot for adapters the test never destroyed.
		unregisterInstance(adapter.Handle())
	})
	return adapter, log
}

// initAdapter runs the init entry point and asserts success.
func initAdapter(t *testing.T, adapter *PluginAdapter) *EntryPoints {
	t.Helper()
	entry := adapter.EntryPoints()
	require.NotNil(t, entry.Init)
	require.True(t, entry.Init())
	return entry
}
