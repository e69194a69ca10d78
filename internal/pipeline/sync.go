package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"docsnip/internal/content"
	"docsnip/internal/crawler"
	"docsnip/internal/docs"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures a Sync.
type Options struct {
	Root    string // content paths in documentation tags are relative to Root
	Marker  string
	Workers int

	Crawler *crawler.Crawler
	Parser  *content.Parser
	Logger  *zap.Logger
}

// Sync refreshes the code blocks of documentation files from the content
// files they reference.
type Sync struct {
	root    string
	marker  string
	workers int
	crawler *crawler.Crawler
	parser  *content.Parser
	logger  *zap.Logger
}

// Update is the synchronized text of one documentation file.
type Update struct {
	Path       string
	Before     string
	After      string
	References int
}

// Changed reports whether the file is out of date.
func (u *Update) Changed() bool {
	return u.Before != u.After
}

// Plan holds the outcome of a sync before anything is written. Documentation
// files without references are not part of it.
type Plan struct {
	Docs     int // documentation files found
	Contents int // content files parsed
	Updates  []*Update
}

// Stale returns the updates whose file is out of date.
func (p *Plan) Stale() []*Update {
	var out []*Update
	for _, u := range p.Updates {
		if u.Changed() {
			out = append(out, u)
		}
	}
	return out
}

type docFile struct {
	text string
	file *docs.File
}

func NewSync(opts Options) *Sync {
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Marker == "" {
		opts.Marker = "docsnip"
	}
	if opts.Crawler == nil {
		opts.Crawler = crawler.NewCrawler(nil, nil)
	}
	if opts.Parser == nil {
		opts.Parser = content.NewParser(nil, "")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Sync{
		root:    opts.Root,
		marker:  opts.Marker,
		workers: opts.Workers,
		crawler: opts.Crawler,
		parser:  opts.Parser,
		logger:  opts.Logger,
	}
}

// Run synchronizes every documentation file at path and writes the files
// that changed. Nothing is written unless every file rendered.
func (s *Sync) Run(ctx context.Context, path string) (*Plan, error) {
	plan, err := s.Plan(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := s.writeStage(plan); err != nil {
		return plan, err
	}
	return plan, nil
}

// Plan renders every documentation file at path without writing anything.
func (s *Sync) Plan(ctx context.Context, path string) (*Plan, error) {
	start := time.Now()

	paths, err := s.discoverStage(path)
	if err != nil {
		return nil, err
	}

	files, err := s.parseDocsStage(ctx, paths)
	if err != nil {
		return nil, err
	}

	store, err := s.parseContentStage(ctx, files)
	if err != nil {
		return nil, err
	}

	updates, err := s.renderStage(ctx, files, store)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Docs: len(paths), Contents: store.Len(), Updates: updates}
	s.logger.Info("Sync planned",
		zap.Int("docs", plan.Docs),
		zap.Int("contents", plan.Contents),
		zap.Int("stale", len(plan.Stale())),
		zap.Duration("elapsed", time.Since(start)))
	return plan, nil
}

func (s *Sync) discoverStage(path string) ([]string, error) {
	paths, err := s.crawler.FindDocs(path)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Found documentation files", zap.Int("count", len(paths)))
	return paths, nil
}

func (s *Sync) parseDocsStage(ctx context.Context, paths []string) ([]*docFile, error) {
	s.logger.Info("Parsing documentation files for tags")

	files := make([]*docFile, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("failed to read documentation file %s: %w", p, err)
			}
			f, err := docs.Parse(p, string(raw), s.marker)
			if err != nil {
				return err
			}
			for _, ref := range f.References() {
				s.logger.Debug("Found reference",
					zap.String("doc", p),
					zap.Int("line", ref.Line),
					zap.String("path", ref.Path),
					zap.String("spec", ref.Spec.String()))
			}
			files[i] = &docFile{text: string(raw), file: f}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// parseContentStage parses each referenced content file once. It starts
// only after every documentation file has been parsed.
func (s *Sync) parseContentStage(ctx context.Context, files []*docFile) (*content.Store, error) {
	s.logger.Info("Parsing content files for tags")

	// first reference of each content file, for error reporting
	first := make(map[string]*ReferenceError)
	for _, df := range files {
		for _, ref := range df.file.References() {
			key := contentKey(ref.Path)
			if _, ok := first[key]; !ok {
				first[key] = &ReferenceError{Doc: df.file.Path, Line: ref.Line, Path: ref.Path}
			}
		}
	}
	keys := make([]string, 0, len(first))
	for k := range first {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	store := content.NewStore()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, key := range keys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			abs := filepath.Join(s.root, filepath.FromSlash(key))
			info, err := os.Stat(abs)
			switch {
			case errors.Is(err, fs.ErrNotExist), err == nil && info.IsDir():
				refErr := *first[key]
				refErr.Err = ErrContentFileNotFound
				return &refErr
			case err != nil:
				refErr := *first[key]
				refErr.Err = fmt.Errorf("failed to stat content file %s: %w", abs, err)
				return &refErr
			}
			tree, err := s.parser.ParseFile(ctx, abs, key)
			if err != nil {
				return err
			}
			store.Put(key, tree)
			s.logger.Debug("Parsed content file",
				zap.String("path", key),
				zap.Int("regions", len(tree.Regions())))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Sync) renderStage(ctx context.Context, files []*docFile, store *content.Store) ([]*Update, error) {
	s.logger.Info("Rendering documentation files")

	updates := make([]*Update, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, df := range files {
		refs := len(df.file.References())
		if refs == 0 {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			after, err := RenderFile(df.file, store, s.logger)
			if err != nil {
				return err
			}
			updates[i] = &Update{Path: df.file.Path, Before: df.text, After: after, References: refs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := updates[:0]
	for _, u := range updates {
		if u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Sync) writeStage(plan *Plan) error {
	for _, u := range plan.Updates {
		if !u.Changed() {
			s.logger.Info("Documentation file is up to date", zap.String("doc", u.Path))
			continue
		}
		if err := WriteFileAtomic(u.Path, []byte(u.After)); err != nil {
			return err
		}
		s.logger.Info("Updated documentation file",
			zap.String("doc", u.Path),
			zap.Int("references", u.References))
	}
	return nil
}
