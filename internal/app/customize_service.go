package app

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/example/edgegen/internal/customize"
	"github.com/example/edgegen/internal/entities"
	"github.com/example/edgegen/internal/ports/primary"
	"github.com/example/edgegen/internal/ports/secondary"
	"github.com/example/edgegen/internal/templates/demo"
)

// ErrResidue means strict mode found leftover template markers in an output.
var ErrResidue = errors.New("template residue in generated output")

// CustomizeServiceImpl implements the CustomizeService interface.
type CustomizeServiceImpl struct {
	workspace secondary.WorkspaceAdapter
	ledger    secondary.LedgerRepository
	logger    *zap.Logger
	newRunID  func() string
}

// NewCustomizeService creates a new CustomizeService with injected dependencies.
// ledger may be nil, in which case runs are not recorded.
func NewCustomizeService(workspace secondary.WorkspaceAdapter, ledger secondary.LedgerRepository, logger *zap.Logger) *CustomizeServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomizeServiceImpl{
		workspace: workspace,
		ledger:    ledger,
		logger:    logger,
		newRunID:  func() string { return "RUN-" + uuid.NewString() },
	}
}

// generator turns demo source text into entity-specific text.
type generator func(src string, cfg entities.EntityConfig) string

// sources holds the demo files read once per run.
type sources struct {
	script []byte
	style  []byte
}

// Run customizes both demo files for every requested entity.
func (s *CustomizeServiceImpl) Run(ctx context.Context, req primary.RunRequest) (*primary.RunResult, error) {
	if err := req.Entities.Validate(); err != nil {
		return nil, err
	}

	// Every entity depends on the same sources, so read both before writing anything.
	src, err := s.readSources(ctx)
	if err != nil {
		return nil, err
	}

	result := &primary.RunResult{RunID: s.newRunID(), DryRun: req.DryRun}
	log := s.logger.With(zap.String("run_id", result.RunID))
	recording := s.ledger != nil && !req.DryRun
	if recording {
		recording = s.startRun(ctx, log, result.RunID, len(req.Entities))
	}

	outcomes := make([]entityOutcome, len(req.Entities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(req.Jobs, 1))
	for i, cfg := range req.Entities {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outputs, err := s.customizeEntity(gctx, cfg, src, req)
			outcomes[i].outputs = outputs
			if err == nil {
				return nil
			}
			if req.KeepGoing && errors.Is(err, secondary.ErrDestinationUnwritable) {
				log.Warn("skipping entity", zap.String("entity", cfg.Key), zap.Error(err))
				outcomes[i].skipped = err
				return nil
			}
			return fmt.Errorf("entity %s: %w", cfg.Key, err)
		})
	}
	runErr := g.Wait()

	var skipped []error
	for i, o := range outcomes {
		result.Outputs = append(result.Outputs, o.outputs...)
		if o.skipped != nil {
			key := req.Entities[i].Key
			result.Skipped = append(result.Skipped, &primary.SkippedEntity{
				EntityKey: key,
				Err:       o.skipped,
				Partial:   len(o.outputs) > 0,
			})
			skipped = append(skipped, fmt.Errorf("entity %s skipped: %w", key, o.skipped))
		}
	}
	if runErr == nil && len(skipped) > 0 {
		runErr = errors.Join(skipped...)
	}

	if recording {
		s.finishRun(ctx, log, result, runErr, len(req.Entities)-len(result.Skipped))
	}

	log.Info("customize run finished",
		zap.Int("entities", len(req.Entities)),
		zap.Int("outputs", len(result.Outputs)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Bool("dry_run", req.DryRun),
		zap.Error(runErr))

	return result, runErr
}

type entityOutcome struct {
	outputs []*primary.OutputResult
	skipped error
}

// CustomizeScript writes <entity-dir>/script.js from the demo script.
func (s *CustomizeServiceImpl) CustomizeScript(ctx context.Context, cfg entities.EntityConfig) (*primary.OutputResult, error) {
	return s.generateFromSource(ctx, cfg, primary.ScriptFile, customize.CustomizeScript)
}

// CopyStyle writes <entity-dir>/style.css from the demo stylesheet.
func (s *CustomizeServiceImpl) CopyStyle(ctx context.Context, cfg entities.EntityConfig) (*primary.OutputResult, error) {
	return s.generateFromSource(ctx, cfg, primary.StyleFile, customize.CustomizeStyle)
}

// SeedDemo writes the placeholder-token demo page.
func (s *CustomizeServiceImpl) SeedDemo(ctx context.Context, force bool) ([]string, error) {
	if !force {
		for _, name := range demo.Names {
			if _, err := s.workspace.ReadSource(ctx, name); err == nil {
				return nil, fmt.Errorf("%w: %s", secondary.ErrDemoExists, s.workspace.SourcePath(name))
			}
		}
	}

	var paths []string
	for _, name := range demo.Names {
		content, err := demo.GetFile(name)
		if err != nil {
			return paths, fmt.Errorf("failed to load demo %s: %w", name, err)
		}
		path, err := s.workspace.SeedSource(ctx, name, content, force)
		if err != nil {
			return paths, err
		}
		s.logger.Debug("seeded demo file", zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

// Helper methods

func (s *CustomizeServiceImpl) readSources(ctx context.Context) (sources, error) {
	script, err := s.workspace.ReadSource(ctx, primary.ScriptFile)
	if err != nil {
		return sources{}, err
	}
	style, err := s.workspace.ReadSource(ctx, primary.StyleFile)
	if err != nil {
		return sources{}, err
	}
	return sources{script: script, style: style}, nil
}

func (s *CustomizeServiceImpl) customizeEntity(ctx context.Context, cfg entities.EntityConfig, src sources, req primary.RunRequest) ([]*primary.OutputResult, error) {
	// Check the directory once so an unwritable entity is skipped before either file lands.
	if !req.DryRun {
		if err := s.workspace.PrepareOutput(ctx, cfg.Key); err != nil {
			return nil, err
		}
	}

	script, err := s.generate(ctx, cfg, primary.ScriptFile, src.script, customize.CustomizeScript, req)
	if err != nil {
		return nil, err
	}
	style, err := s.generate(ctx, cfg, primary.StyleFile, src.style, customize.CustomizeStyle, req)
	if err != nil {
		return []*primary.OutputResult{script}, err
	}
	return []*primary.OutputResult{script, style}, nil
}

func (s *CustomizeServiceImpl) generateFromSource(ctx context.Context, cfg entities.EntityConfig, name string, gen generator) (*primary.OutputResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, err := s.workspace.ReadSource(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, cfg, name, src, gen, primary.RunRequest{})
}

// generate rewrites one demo file for cfg and writes it unless the request is a dry run.
func (s *CustomizeServiceImpl) generate(ctx context.Context, cfg entities.EntityConfig, name string, src []byte, gen generator, req primary.RunRequest) (*primary.OutputResult, error) {
	data := []byte(gen(string(src), cfg))
	path := s.workspace.OutputPath(cfg.Key, name)

	findings := customize.Residue(string(data), cfg)
	if req.Strict && len(findings) > 0 {
		f := findings[0]
		return nil, fmt.Errorf("%w: %s:%d:%d: %q (%d total)", ErrResidue, path, f.Line, f.Column, f.Text, len(findings))
	}

	prev, err := s.workspace.ReadOutput(ctx, cfg.Key, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", secondary.ErrDestinationUnwritable, err)
	}

	if !req.DryRun {
		if path, err = s.workspace.WriteOutput(ctx, cfg.Key, name, data); err != nil {
			return nil, err
		}
	}

	out := &primary.OutputResult{
		EntityKey: cfg.Key,
		File:      name,
		Path:      path,
		Status:    outputStatus(prev, data),
		Digest:    Digest(data),
		Bytes:     len(data),
		Residue:   findings,
	}

	s.logger.Debug("customized file",
		zap.String("entity", cfg.Key),
		zap.String("path", path),
		zap.String("status", out.Status),
		zap.Int("residue", len(findings)))
	if len(findings) > 0 {
		s.logger.Warn("template residue in output",
			zap.String("entity", cfg.Key),
			zap.String("path", path),
			zap.Int("count", len(findings)))
	}

	return out, nil
}

func (s *CustomizeServiceImpl) startRun(ctx context.Context, log *zap.Logger, runID string, entityCount int) bool {
	err := s.ledger.CreateRun(ctx, &secondary.RunRecord{
		ID:          runID,
		Root:        s.workspace.Root(),
		EntityCount: entityCount,
	})
	if err != nil {
		log.Warn("ledger unavailable, run not recorded", zap.Error(err))
		return false
	}
	return true
}

func (s *CustomizeServiceImpl) finishRun(ctx context.Context, log *zap.Logger, result *primary.RunResult, runErr error, entityCount int) {
	// Outputs are recorded after the fan-out so ledger writes stay sequential.
	for _, o := range result.Outputs {
		err := s.ledger.AddOutput(ctx, &secondary.OutputRecord{
			RunID:     result.RunID,
			EntityKey: o.EntityKey,
			Path:      o.Path,
			Digest:    o.Digest,
			Bytes:     o.Bytes,
			Status:    o.Status,
		})
		if err != nil {
			log.Warn("failed to record output", zap.String("path", o.Path), zap.Error(err))
		}
	}

	status, errMsg := "success", ""
	if runErr != nil {
		status, errMsg = "failed", runErr.Error()
	}
	if err := s.ledger.FinishRun(ctx, result.RunID, status, errMsg, entityCount); err != nil {
		log.Warn("failed to finish ledger run", zap.Error(err))
	}
}

func outputStatus(prev, data []byte) string {
	switch {
	case prev == nil:
		return primary.OutputCreated
	case bytes.Equal(prev, data):
		return primary.OutputUnchanged
	default:
		return primary.OutputUpdated
	}
}

// Digest returns the hex BLAKE2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Ensure CustomizeServiceImpl implements the interface
var _ primary.CustomizeService = (*CustomizeServiceImpl)(nil)
