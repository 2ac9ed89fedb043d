package codegen

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kolah/swagts/internal/config"
	"github.com/kolah/swagts/internal/model"
	"github.com/kolah/swagts/internal/targets/actions"
	"github.com/kolah/swagts/internal/targets/definitions"
	"github.com/kolah/swagts/internal/templates"
	"github.com/kolah/swagts/internal/typescript"
	embeddedtmpl "github.com/kolah/swagts/templates"
)

// ModuleTemplate renders one document's declarations.
const ModuleTemplate = "ts/module.tmpl"

type Generator struct {
	config      *config.Config
	engine      templates.Engine
	definitions *definitions.Target
	actions     *actions.Target
	logger      *slog.Logger
}

// Output is the result of one document. Exactly one of Content or Err is set.
type Output struct {
	Source   string
	Name     string
	Path     string
	Content  []byte
	Document *model.Document
	Elapsed  time.Duration
	Err      error
}

type moduleData struct {
	Source       string
	Name         string
	Declarations []typescript.Declaration
}

func New(cfg *config.Config, logger *slog.Logger) (*Generator, error) {
	engine, err := templates.NewEngine(embeddedtmpl.FS, cfg.Templates.Dir, typescript.TemplateFuncs())
	if err != nil {
		return nil, fmt.Errorf("creating template engine: %w", err)
	}

	return &Generator{
		config:      cfg,
		engine:      engine,
		definitions: definitions.New(cfg.ScalarModels, logger),
		actions:     actions.New(logger),
		logger:      logger,
	}, nil
}

// CompileDocument emits, renders and formats the declarations of one
// document. The definitions interface always precedes the actions interface.
func (g *Generator) CompileDocument(doc *model.Document) ([]byte, error) {
	res := doc.Resource
	ns := typescript.Namespace(res.Source, res.Name)

	data := moduleData{
		Source: res.Source,
		Name:   res.Name,
		Declarations: []typescript.Declaration{
			g.definitions.Emit(doc, ns),
			g.actions.Emit(doc, ns),
		},
	}

	src, err := g.engine.Execute(ModuleTemplate, data)
	if err != nil {
		return nil, &DocumentError{Source: res.Source, Name: res.Name, Stage: StageRender, Err: err}
	}

	formatted, err := typescript.Format([]byte(src), g.formatOptions())
	if err != nil {
		return nil, &DocumentError{Source: res.Source, Name: res.Name, Stage: StageFormat, Err: err}
	}

	return formatted, nil
}

// Compile compiles every document in parallel. Outputs keep the input order,
// and a failed document never affects the others.
func (g *Generator) Compile(docs []*model.Document) []Output {
	registry := typescript.NewNamespaceRegistry()
	for _, doc := range docs {
		registry.Collect(doc.Resource.Source, doc.Resource.Name)
	}
	for _, collision := range registry.Collisions() {
		g.logger.Warn("namespace collision", "namespace", collision)
	}

	outputs := make([]Output, len(docs))

	var eg errgroup.Group
	eg.SetLimit(g.workers())
	for i, doc := range docs {
		eg.Go(func() error {
			outputs[i] = g.compile(doc, registry)
			return nil
		})
	}
	_ = eg.Wait()

	return outputs
}

func (g *Generator) compile(doc *model.Document, registry *typescript.NamespaceRegistry) Output {
	start := time.Now()
	res := doc.Resource

	out := Output{
		Source:   res.Source,
		Name:     res.Name,
		Path:     g.config.OutputPath(res.Source, res.Name),
		Document: doc,
	}

	if conflicts := registry.Conflicts(res.Source, res.Name); len(conflicts) > 0 {
		out.Err = &DocumentError{
			Source: res.Source,
			Name:   res.Name,
			Stage:  StageNamespace,
			Err: fmt.Errorf("%w: %s is also derived from %s",
				ErrNamespaceCollision, typescript.Namespace(res.Source, res.Name), strings.Join(conflicts, ", ")),
		}
	} else {
		out.Content, out.Err = g.CompileDocument(doc)
	}

	out.Elapsed = time.Since(start)
	return out
}

func (g *Generator) workers() int {
	if g.config.Workers > 0 {
		return g.config.Workers
	}
	return runtime.NumCPU()
}

func (g *Generator) formatOptions() typescript.FormatOptions {
	return typescript.FormatOptions{
		Semi:        g.config.Prettier.Semi,
		SingleQuote: g.config.Prettier.SingleQuote,
	}
}
