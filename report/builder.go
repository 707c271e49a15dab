// Package report turns client derivations into render-ready pages. A build
// picks the pages of a scenario, loads each page layout through a shared
// template cache and projects the derived labels onto it.
package report

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/arcana/am"
	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/dial"
	"github.com/teranos/arcana/errors"
	"github.com/teranos/arcana/logger"
	"github.com/teranos/arcana/metrics"
	"github.com/teranos/arcana/render"
	"github.com/teranos/arcana/template"
)

// Background images, relative to the images directory.
const (
	FullstarImage    = "fullstar.jpg"
	CoupleImage      = "couple.jpg"
	PredictImage     = "predict.jpg"
	PythagorianImage = "pythagorian_table.jpg"
)

// TriangleImage is the background of a pointer's triangle page.
func TriangleImage(p arcane.Pointer) string {
	return string(p) + ".jpg"
}

// Builder builds reports. It is safe for concurrent use; every build derives
// its own graphs and only the template cache is shared.
type Builder struct {
	templates am.TemplatesConfig
	scale     float64
	cache     *template.Cache
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewBuilder creates a builder from cfg. A nil cache gets a private one sized
// by cfg; m may be nil.
func NewBuilder(cfg *am.Config, cache *template.Cache, m *metrics.Metrics) (*Builder, error) {
	if cfg == nil {
		return nil, errors.New("report builder needs a configuration")
	}
	if cache == nil {
		var err error
		if cache, err = template.NewCache(cfg.GetCacheSize(), m); err != nil {
			return nil, err
		}
	}
	return &Builder{
		templates: cfg.Templates,
		scale:     cfg.GetScale(),
		cache:     cache,
		metrics:   m,
		now:       time.Now,
	}, nil
}

// Cache returns the template cache shared by every build.
func (b *Builder) Cache() *template.Cache {
	return b.cache
}

// Build produces every page of req.Scenario.
func (b *Builder) Build(ctx context.Context, req Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	id := uuid.NewString()
	ctx = logger.WithRequestID(logger.WithComponent(ctx, "report"), id)
	log := logger.LoggerFromContext(ctx)
	start := time.Now()

	var (
		pages []Page
		err   error
	)
	if req.Scenario == ScenarioCouple {
		pages, err = b.couplePages(ctx, req.Clients[0], req.Clients[1])
	} else {
		pages, err = b.ClientPages(ctx, arcane.NewGraph(req.Clients[0]), req.Scenario)
	}
	if err != nil {
		log.Errorw("Report build failed",
			logger.FieldScenario, req.Scenario,
			logger.FieldError, err.Error())
		return nil, errors.Wrapf(err, "failed to build %s report", req.Scenario)
	}

	elapsed := time.Since(start)
	for _, p := range pages {
		b.metrics.PageBuilt(string(p.Kind), string(req.Scenario))
	}
	b.metrics.ObserveBuild(string(req.Scenario), elapsed)
	log.Infow("Report built",
		logger.FieldScenario, req.Scenario,
		logger.FieldCount, len(pages),
		logger.FieldDurationMS, elapsed.Milliseconds())

	return &Report{
		ID:       id,
		Scenario: req.Scenario,
		Clients:  req.Clients,
		BuiltAt:  b.now(),
		Pages:    pages,
	}, nil
}

// ClientPages builds one client's pages for scenario: fullstar, triangles,
// predict and pythagorian for adults; triangles and pythagorian for children.
func (b *Builder) ClientPages(ctx context.Context, g *arcane.Graph, scenario Scenario) ([]Page, error) {
	var pages []Page
	add := func(p Page, err error) error {
		if err != nil {
			return err
		}
		pages = append(pages, p)
		return ctx.Err()
	}

	if scenario != ScenarioChild {
		if err := add(b.FullStar(ctx, g)); err != nil {
			return nil, err
		}
	}
	for _, p := range scenario.Pointers() {
		if err := add(b.Triangle(ctx, g, p)); err != nil {
			return nil, err
		}
	}
	if scenario != ScenarioChild {
		if err := add(b.Predict(ctx, g)); err != nil {
			return nil, err
		}
	}
	if err := add(b.Pythagorian(ctx, g)); err != nil {
		return nil, err
	}
	return pages, nil
}

// couplePages builds both partners' adult pages concurrently, then the
// couple page. Partners sharing a name get numbered page names.
func (b *Builder) couplePages(ctx context.Context, first, second arcane.Client) ([]Page, error) {
	clients := [2]arcane.Client{first, second}
	var (
		graphs [2]*arcane.Graph
		sets   [2][]Page
	)
	eg, egctx := errgroup.WithContext(ctx)
	for i := range clients {
		eg.Go(func() error {
			g := arcane.NewGraph(clients[i])
			pages, err := b.ClientPages(egctx, g, ScenarioAdult)
			if err != nil {
				return errors.Wrapf(err, "client %s", clients[i].Name)
			}
			graphs[i], sets[i] = g, pages
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if first.Name == second.Name {
		for i := range sets {
			renamePages(sets[i], first.Name, first.Name+"_"+strconv.Itoa(i+1))
		}
	}
	couple, err := b.Couple(ctx, graphs[0], graphs[1])
	if err != nil {
		return nil, err
	}
	pages := append(sets[0], sets[1]...)
	return append(pages, couple), nil
}

func renamePages(pages []Page, from, to string) {
	for i := range pages {
		pages[i].Name = to + pages[i].Name[len(from):]
	}
}

// FullStar builds the "<name>_fullstar" page.
func (b *Builder) FullStar(ctx context.Context, g *arcane.Graph) (Page, error) {
	labels, err := g.FullStar(arcane.Pointers)
	if err != nil {
		return Page{}, err
	}
	page := Page{Name: g.Client.Name + "_fullstar", Kind: KindFullstar, Image: b.templates.ImagePath(FullstarImage)}
	return b.fixedPage(ctx, page, b.templates.Pages.Fullstar, labels)
}

// Triangle builds the "<name>_<pointer>" page.
func (b *Builder) Triangle(ctx context.Context, g *arcane.Graph, pointer arcane.Pointer) (Page, error) {
	t, err := g.Triangle(pointer)
	if err != nil {
		return Page{}, err
	}
	page := Page{
		Name:    g.Client.Name + "_" + string(pointer),
		Kind:    KindTriangle,
		Pointer: pointer,
		Image:   b.templates.ImagePath(TriangleImage(pointer)),
	}
	return b.fixedPage(ctx, page, b.templates.Pages.Triangles, t.Labels())
}

// Couple builds the "<first name>_couple" page from both main stars.
func (b *Builder) Couple(ctx context.Context, first, second *arcane.Graph) (Page, error) {
	labels := arcane.CombineCouple(first.Main, second.Main)
	page := Page{Name: first.Client.Name + "_couple", Kind: KindCouple, Image: b.templates.ImagePath(CoupleImage)}
	return b.fixedPage(ctx, page, b.templates.Pages.Couple, labels)
}

// Predict builds the "<name>_predict" page: the inner star on the fixed
// predict layout, followed by the 80 dial entries.
func (b *Builder) Predict(ctx context.Context, g *arcane.Graph) (Page, error) {
	page := Page{Name: g.Client.Name + "_predict", Kind: KindPredict, Image: b.templates.ImagePath(PredictImage)}

	inner, err := dial.InnerStar(g, arcane.Pointers)
	if err != nil {
		return Page{}, err
	}
	fixed, err := b.fixedContext(b.templates.Pages.Predict, inner)
	if err != nil {
		return Page{}, errors.Wrapf(err, "page %s", page.Name)
	}

	entries, err := dial.FullDial(g, arcane.Pointers)
	if err != nil {
		return Page{}, err
	}
	doc, err := b.document(b.templates.Pages.Dial)
	if err != nil {
		return Page{}, errors.Wrapf(err, "page %s", page.Name)
	}
	layout, err := doc.DialLayout()
	if err != nil {
		return Page{}, errors.Wrapf(err, "page %s: %s", page.Name, b.templates.Pages.Dial)
	}
	ring, err := render.BuildDialContext(layout, entries, b.scale)
	if err != nil {
		return Page{}, errors.Wrapf(err, "page %s", page.Name)
	}

	page.Context = render.Merge(fixed, ring)
	b.finish(ctx, page, inner, entries)
	return page, nil
}

// Pythagorian builds the "<name>_pythagorian" page.
func (b *Builder) Pythagorian(ctx context.Context, g *arcane.Graph) (Page, error) {
	page := Page{Name: g.Client.Name + "_pythagorian", Kind: KindPythagorian, Image: b.templates.ImagePath(PythagorianImage)}
	labels := g.Table.Labels()

	doc, err := b.document(b.templates.Pages.Pythagorian)
	if err != nil {
		return Page{}, errors.Wrapf(err, "page %s", page.Name)
	}
	layout, err := doc.GridLayout()
	if err != nil {
		return Page{}, errors.Wrapf(err, "page %s: %s", page.Name, b.templates.Pages.Pythagorian)
	}
	if page.Context, err = render.BuildGridContext(layout, labels, b.scale); err != nil {
		return Page{}, errors.Wrapf(err, "page %s", page.Name)
	}
	b.finish(ctx, page, labels)
	return page, nil
}

func (b *Builder) fixedPage(ctx context.Context, page Page, layout string, labels *arcane.Labels) (Page, error) {
	rc, err := b.fixedContext(layout, labels)
	if err != nil {
		return Page{}, errors.Wrapf(err, "page %s", page.Name)
	}
	page.Context = rc
	b.finish(ctx, page, labels)
	return page, nil
}

func (b *Builder) fixedContext(layout string, labels *arcane.Labels) (*render.Context, error) {
	doc, err := b.document(layout)
	if err != nil {
		return nil, err
	}
	elements, err := doc.Elements()
	if err != nil {
		return nil, errors.Wrap(err, layout)
	}
	return render.BuildRenderContext(elements, labels, b.scale)
}

func (b *Builder) document(name string) (template.Document, error) {
	if name == "" {
		return nil, errors.WithHint(
			errors.NewInvalidArgumentError("page layout is not configured"),
			"set templates.pages.* in arcana.toml",
		)
	}
	return b.cache.Get(b.templates.PagePath(name))
}

// finish logs the page and counts labels that found no slot in its layout.
func (b *Builder) finish(ctx context.Context, page Page, sources ...*arcane.Labels) {
	var dropped []string
	for _, labels := range sources {
		for pair := labels.Oldest(); pair != nil; pair = pair.Next() {
			if _, ok := page.Context.Get(pair.Key); !ok {
				dropped = append(dropped, pair.Key)
			}
		}
	}
	b.metrics.ElementsDropped(string(page.Kind), len(dropped))

	log := logger.LoggerFromContext(ctx)
	fields := []interface{}{logger.FieldPage, page.Name, logger.FieldCount, page.Context.Len()}
	if len(dropped) > 0 {
		fields = append(fields, logger.FieldDropped, len(dropped))
	}
	log.Debugw("Page built", fields...)
	if logger.TraceEnabled() {
		for _, key := range dropped {
			log.Debugw("Label has no layout element", logger.FieldPage, page.Name, "label", key)
		}
	}
}
