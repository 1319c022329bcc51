package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"invest-research/config"
	"invest-research/internal/dto"
	"invest-research/internal/model"
	"invest-research/internal/repository"
)

func testConfig() *config.Config {
	return &config.Config{
		AI: config.AI{
			Provider:      config.AIProviderClaude,
			AnalysisModel: "analysis-model",
			ScanModel:     "scan-model",
		},
		Research: config.Research{
			SearchConcurrency: 3,
			AnalysisMaxTokens: 1024,
			ScanMaxTokens:     512,
		},
	}
}

// In-memory repository fakes. The detached workflow goroutines touch these
// concurrently with the test goroutine, so every fake is mutex-guarded.

type fakeAnalysisRepo struct {
	mu    sync.Mutex
	items map[string]model.CompanyAnalysis
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{items: map[string]model.CompanyAnalysis{}}
}

func (r *fakeAnalysisRepo) Create(ctx context.Context, a *model.CompanyAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = fmt.Sprintf("analysis-%d", len(r.items)+1)
	}
	r.items[a.ID] = *a
	return nil
}

func (r *fakeAnalysisRepo) Save(ctx context.Context, a *model.CompanyAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[a.ID] = *a
	return nil
}

func (r *fakeAnalysisRepo) FindByID(ctx context.Context, id string) (*model.CompanyAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := a
	return &copied, nil
}

func (r *fakeAnalysisRepo) List(ctx context.Context, userID string) ([]model.CompanyAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.CompanyAnalysis
	for _, a := range r.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAnalysisRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeMacroRepo struct {
	mu    sync.Mutex
	items map[string]model.MacroReport
}

func newFakeMacroRepo() *fakeMacroRepo {
	return &fakeMacroRepo{items: map[string]model.MacroReport{}}
}

func (r *fakeMacroRepo) Create(ctx context.Context, report *model.MacroReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == "" {
		report.ID = fmt.Sprintf("macro-%d", len(r.items)+1)
	}
	r.items[report.ID] = *report
	return nil
}

func (r *fakeMacroRepo) Save(ctx context.Context, report *model.MacroReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[report.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[report.ID] = *report
	return nil
}

func (r *fakeMacroRepo) FindByID(ctx context.Context, id string) (*model.MacroReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := report
	return &copied, nil
}

func (r *fakeMacroRepo) FindLatest(ctx context.Context, userID string) (*model.MacroReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, report := range r.items {
		if report.UserID == userID {
			copied := report
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMacroRepo) FindLatestComplete(ctx context.Context, userID string) (*model.MacroReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, report := range r.items {
		if report.UserID == userID && report.Status == model.StatusComplete {
			copied := report
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMacroRepo) List(ctx context.Context, userID string, limit int) ([]model.MacroReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MacroReport
	for _, report := range r.items {
		if report.UserID == userID {
			out = append(out, report)
		}
	}
	return out, nil
}

type fakePortfolioScanRepo struct {
	mu    sync.Mutex
	items map[string]model.PortfolioScan
}

func newFakePortfolioScanRepo() *fakePortfolioScanRepo {
	return &fakePortfolioScanRepo{items: map[string]model.PortfolioScan{}}
}

func (r *fakePortfolioScanRepo) Create(ctx context.Context, scan *model.PortfolioScan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if scan.ID == "" {
		scan.ID = fmt.Sprintf("pscan-%d", len(r.items)+1)
	}
	r.items[scan.ID] = *scan
	return nil
}

func (r *fakePortfolioScanRepo) Save(ctx context.Context, scan *model.PortfolioScan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[scan.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[scan.ID] = *scan
	return nil
}

func (r *fakePortfolioScanRepo) FindByID(ctx context.Context, id string) (*model.PortfolioScan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	scan, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := scan
	return &copied, nil
}

func (r *fakePortfolioScanRepo) FindInProgress(ctx context.Context, userID string) (*model.PortfolioScan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, scan := range r.items {
		if scan.UserID == userID && scan.Status == model.StatusInProgress {
			copied := scan
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePortfolioScanRepo) List(ctx context.Context, userID string, limit int) ([]model.PortfolioScan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PortfolioScan
	for _, scan := range r.items {
		if scan.UserID == userID {
			out = append(out, scan)
		}
	}
	return out, nil
}

type fakeWatchlistScanRepo struct {
	mu    sync.Mutex
	items map[string]model.WatchlistScan
}

func newFakeWatchlistScanRepo() *fakeWatchlistScanRepo {
	return &fakeWatchlistScanRepo{items: map[string]model.WatchlistScan{}}
}

func (r *fakeWatchlistScanRepo) Create(ctx context.Context, scan *model.WatchlistScan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if scan.ID == "" {
		scan.ID = fmt.Sprintf("wscan-%d", len(r.items)+1)
	}
	r.items[scan.ID] = *scan
	return nil
}

func (r *fakeWatchlistScanRepo) Save(ctx context.Context, scan *model.WatchlistScan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[scan.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[scan.ID] = *scan
	return nil
}

func (r *fakeWatchlistScanRepo) FindByID(ctx context.Context, id string) (*model.WatchlistScan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	scan, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := scan
	return &copied, nil
}

func (r *fakeWatchlistScanRepo) FindInProgress(ctx context.Context, userID string) (*model.WatchlistScan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, scan := range r.items {
		if scan.UserID == userID && scan.Status == model.StatusInProgress {
			copied := scan
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeWatchlistScanRepo) List(ctx context.Context, userID string, limit int) ([]model.WatchlistScan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.WatchlistScan
	for _, scan := range r.items {
		if scan.UserID == userID {
			out = append(out, scan)
		}
	}
	return out, nil
}

type fakeAlertRepo struct {
	mu     sync.Mutex
	alerts []model.PortfolioAlert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{}
}

func (r *fakeAlertRepo) Create(ctx context.Context, alert *model.PortfolioAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if alert.ID == "" {
		alert.ID = fmt.Sprintf("alert-%d", len(r.alerts)+1)
	}
	r.alerts = append(r.alerts, *alert)
	return nil
}

func (r *fakeAlertRepo) CreateBatch(ctx context.Context, alerts []model.PortfolioAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range alerts {
		if alerts[i].ID == "" {
			alerts[i].ID = fmt.Sprintf("alert-%d", len(r.alerts)+1)
		}
		r.alerts = append(r.alerts, alerts[i])
	}
	return nil
}

func (r *fakeAlertRepo) FindByID(ctx context.Context, id string) (*model.PortfolioAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.alerts {
		if r.alerts[i].ID == id {
			copied := r.alerts[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAlertRepo) List(ctx context.Context, userID string, filter repository.AlertFilter) ([]model.PortfolioAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PortfolioAlert
	for i := range r.alerts {
		if r.alerts[i].UserID == userID {
			out = append(out, r.alerts[i])
		}
	}
	return out, nil
}

func (r *fakeAlertRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for i := range r.alerts {
		if r.alerts[i].UserID == userID && r.alerts[i].Status == model.AlertStatusUnread {
			count++
		}
	}
	return count, nil
}

func (r *fakeAlertRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.alerts {
		if r.alerts[i].ID == id {
			r.alerts[i].Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeAlertRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.alerts {
		if r.alerts[i].UserID == userID && r.alerts[i].Status == model.AlertStatusUnread {
			r.alerts[i].Status = model.AlertStatusRead
			n++
		}
	}
	return n, nil
}

type fakeWatchlistRepo struct {
	mu    sync.Mutex
	items map[string]model.WatchlistItem
}

func newFakeWatchlistRepo() *fakeWatchlistRepo {
	return &fakeWatchlistRepo{items: map[string]model.WatchlistItem{}}
}

func (r *fakeWatchlistRepo) Create(ctx context.Context, item *model.WatchlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.Ticker == item.Ticker {
			return gorm.ErrDuplicatedKey
		}
	}
	if item.ID == "" {
		item.ID = fmt.Sprintf("watch-%d", len(r.items)+1)
	}
	if item.Status == "" {
		item.Status = model.EntityStatusActive
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeWatchlistRepo) Save(ctx context.Context, item *model.WatchlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeWatchlistRepo) FindByID(ctx context.Context, id string) (*model.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := item
	return &copied, nil
}

func (r *fakeWatchlistRepo) FindByTicker(ctx context.Context, userID, ticker string) (*model.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.UserID == userID && item.Ticker == ticker {
			copied := item
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeWatchlistRepo) List(ctx context.Context, userID string) ([]model.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.WatchlistItem
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeWatchlistRepo) ListActive(ctx context.Context, userID string) ([]model.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.WatchlistItem
	for _, item := range r.items {
		if item.UserID == userID && item.Status == model.EntityStatusActive {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeWatchlistRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeHoldingRepo struct {
	mu    sync.Mutex
	items map[string]model.Holding
}

func newFakeHoldingRepo() *fakeHoldingRepo {
	return &fakeHoldingRepo{items: map[string]model.Holding{}}
}

func (r *fakeHoldingRepo) Create(ctx context.Context, h *model.Holding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.ID == "" {
		h.ID = fmt.Sprintf("holding-%d", len(r.items)+1)
	}
	if h.Status == "" {
		h.Status = model.EntityStatusActive
	}
	r.items[h.ID] = *h
	return nil
}

func (r *fakeHoldingRepo) Save(ctx context.Context, h *model.Holding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[h.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[h.ID] = *h
	return nil
}

func (r *fakeHoldingRepo) FindByID(ctx context.Context, id string) (*model.Holding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := h
	return &copied, nil
}

func (r *fakeHoldingRepo) List(ctx context.Context, userID string) ([]model.Holding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Holding
	for _, h := range r.items {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeHoldingRepo) ListWithTicker(ctx context.Context, userID string) ([]model.Holding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Holding
	for _, h := range r.items {
		if h.UserID == userID && h.Ticker != "" && h.AssetType != model.AssetTypeCash {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeHoldingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeDecisionRepo struct {
	mu    sync.Mutex
	items map[string]model.Decision
}

func newFakeDecisionRepo() *fakeDecisionRepo {
	return &fakeDecisionRepo{items: map[string]model.Decision{}}
}

func (r *fakeDecisionRepo) Create(ctx context.Context, d *model.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == "" {
		d.ID = fmt.Sprintf("decision-%d", len(r.items)+1)
	}
	r.items[d.ID] = *d
	return nil
}

func (r *fakeDecisionRepo) Save(ctx context.Context, d *model.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[d.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[d.ID] = *d
	return nil
}

func (r *fakeDecisionRepo) FindByID(ctx context.Context, id string) (*model.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := d
	return &copied, nil
}

func (r *fakeDecisionRepo) List(ctx context.Context, userID string) ([]model.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Decision
	for _, d := range r.items {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDecisionRepo) ListByTicker(ctx context.Context, userID, ticker string) ([]model.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Decision
	for _, d := range r.items {
		if d.UserID == userID && d.Ticker == ticker {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDecisionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings map[string]model.UserSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: map[string]model.UserSettings{}}
}

func (r *fakeSettingsRepo) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := s
	return &copied, nil
}

func (r *fakeSettingsRepo) Upsert(ctx context.Context, s *model.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = fmt.Sprintf("settings-%d", len(r.settings)+1)
	}
	r.settings[s.UserID] = *s
	return nil
}

// fakeSearchRepo answers every query with canned content, or with an empty
// placeholder when failAll is set.
type fakeSearchRepo struct {
	mu      sync.Mutex
	failAll bool
	queries []string
}

func (r *fakeSearchRepo) Search(ctx context.Context, query string) (dto.SearchResult, error) {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	failAll := r.failAll
	r.mu.Unlock()
	if failAll {
		return dto.SearchResult{Query: query}, fmt.Errorf("search unavailable")
	}
	return dto.SearchResult{Query: query, Content: "research for: " + query}, nil
}

func (r *fakeSearchRepo) SearchBatch(ctx context.Context, queries []string) ([]dto.SearchResult, error) {
	results := make([]dto.SearchResult, len(queries))
	for i, q := range queries {
		res, err := r.Search(ctx, q)
		if err != nil {
			results[i] = dto.SearchResult{Query: q, Citations: []string{}}
			continue
		}
		results[i] = res
	}
	return results, nil
}

func (r *fakeSearchRepo) seenQueries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

// fakeGenRepo returns a fixed response (or error) and records the last
// prompt it was given.
type fakeGenRepo struct {
	mu           sync.Mutex
	response     string
	err          error
	calls        int
	lastMessages []dto.Message
	lastPrompt   string
	lastOpts     dto.GenerationOptions
}

func (r *fakeGenRepo) Complete(ctx context.Context, messages []dto.Message, opts dto.GenerationOptions) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.lastMessages = append([]dto.Message(nil), messages...)
	if len(messages) > 0 {
		r.lastPrompt = messages[len(messages)-1].Content
	}
	r.lastOpts = opts
	if r.err != nil {
		return "", r.err
	}
	return r.response, nil
}

func (r *fakeGenRepo) CompleteJSON(ctx context.Context, messages []dto.Message, opts dto.GenerationOptions, dest interface{}) (string, error) {
	text, err := r.Complete(ctx, messages, opts)
	if err != nil {
		return "", err
	}
	stripped := repository.StripCodeFence(text)
	if err := json.Unmarshal([]byte(stripped), dest); err != nil {
		return text, &repository.MalformedOutputError{Raw: text, Err: err}
	}
	return text, nil
}

func (r *fakeGenRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *fakeGenRepo) messages() []dto.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dto.Message(nil), r.lastMessages...)
}

func (r *fakeGenRepo) prompt() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPrompt
}

func (r *fakeGenRepo) opts() dto.GenerationOptions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastOpts
}
