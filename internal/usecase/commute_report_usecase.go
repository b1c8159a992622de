package usecase

import (
	"context"
	"time"

	"github.com/commute-microservice/internal/config"
	"github.com/commute-microservice/internal/domain"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"go.uber.org/zap"
)

const (
	// PlaceTypeTrainStation - тип места для поиска станций
	PlaceTypeTrainStation = "train_station"
	// PlaceTypeSchool - тип места для поиска школ
	PlaceTypeSchool = "school"

	DefaultStationRadius       = 3000
	DefaultSchoolRadius        = 1000
	DefaultSchoolKeyword       = "primary"
	DefaultDistanceConcurrency = 4
)

// ReportBuilder строит отчёт по почтовому индексу и адресу назначения
type ReportBuilder interface {
	Build(ctx context.Context, originPostcode, destinationAddress string) *domain.CommuteReport
}

// Ensure CommuteReportBuilder implements ReportBuilder interface
var _ ReportBuilder = (*CommuteReportBuilder)(nil)

// ReportOptions - радиусы поиска и лимит параллельных запросов расстояния
type ReportOptions struct {
	StationRadius       int
	SchoolRadius        int
	SchoolKeyword       string
	DistanceConcurrency int
}

// NewReportOptions собирает ReportOptions из конфигурации
func NewReportOptions(report config.ReportConfig, maps config.MapsConfig) ReportOptions {
	return ReportOptions{
		StationRadius:       report.StationRadius,
		SchoolRadius:        report.SchoolRadius,
		SchoolKeyword:       report.SchoolKeyword,
		DistanceConcurrency: maps.DistanceConcurrency,
	}
}

func (o ReportOptions) withDefaults() ReportOptions {
	if o.StationRadius <= 0 {
		o.StationRadius = DefaultStationRadius
	}
	if o.SchoolRadius <= 0 {
		o.SchoolRadius = DefaultSchoolRadius
	}
	if o.SchoolKeyword == "" {
		o.SchoolKeyword = DefaultSchoolKeyword
	}
	if o.DistanceConcurrency <= 0 {
		o.DistanceConcurrency = DefaultDistanceConcurrency
	}
	return o
}

// CommuteReportBuilder - оркестратор отчёта. Состояния между вызовами не хранит.
type CommuteReportBuilder struct {
	resolver *GeocodeResolver
	commute  *CommuteCalculator
	finder   *PointOfInterestFinder
	distance *DistanceCalculator
	opts     ReportOptions
	logger   *zap.Logger
}

// NewCommuteReportBuilder создает новый CommuteReportBuilder
func NewCommuteReportBuilder(
	resolver *GeocodeResolver,
	commute *CommuteCalculator,
	finder *PointOfInterestFinder,
	distance *DistanceCalculator,
	opts ReportOptions,
	logger *zap.Logger,
) *CommuteReportBuilder {
	return &CommuteReportBuilder{
		resolver: resolver,
		commute:  commute,
		finder:   finder,
		distance: distance,
		opts:     opts.withDefaults(),
		logger:   logger,
	}
}

// Build строит отчёт.
//
// Порядок выполнения:
// - Геокодинг origin. Неуспех - сразу возвращается отчёт с OriginResolved=false,
//   больше ни одного внешнего запроса не делается
// - Параллельно: маршрут на транспорте, поиск станций, поиск начальных школ
// - Пешеходные расстояния для всех найденных мест через общий пул
//   на DistanceConcurrency слотов; каждый результат пишется по своему индексу
//
// Ошибки подзапросов поглощаются компонентами. Отмена ctx отменяет все запросы этого вызова.
func (b *CommuteReportBuilder) Build(ctx context.Context, originPostcode, destinationAddress string) *domain.CommuteReport {
	start := time.Now()

	origin, err := b.resolver.Resolve(ctx, originPostcode)
	if err != nil {
		b.logger.Info("Origin unresolved, skipping dependent queries",
			zap.String("postcode", originPostcode),
			zap.Error(err))
		return domain.UnresolvedReport(destinationAddress)
	}

	keyword := b.opts.SchoolKeyword
	stationSearch := PlaceSearch{
		Category:     domain.PlaceCategoryStation,
		PlaceType:    PlaceTypeTrainStation,
		RadiusMeters: b.opts.StationRadius,
	}
	schoolSearch := PlaceSearch{
		Category:     domain.PlaceCategoryPrimarySchool,
		PlaceType:    PlaceTypeSchool,
		RadiusMeters: b.opts.SchoolRadius,
		Keyword:      &keyword,
	}

	// пул общий для обеих категорий
	pool := semaphore.NewWeighted(int64(b.opts.DistanceConcurrency))

	var (
		commute        domain.CommuteInfo
		stations       []domain.PlaceOfInterest
		primarySchools []domain.PlaceOfInterest
	)

	var g errgroup.Group
	g.Go(func() error {
		commute = b.commute.TransitCommute(ctx, origin, destinationAddress)
		return nil
	})
	g.Go(func() error {
		candidates := b.finder.Nearby(ctx, origin, stationSearch)
		stations = b.annotateDistances(ctx, pool, origin, candidates)
		return nil
	})
	g.Go(func() error {
		candidates := b.finder.Nearby(ctx, origin, schoolSearch)
		primarySchools = b.annotateDistances(ctx, pool, origin, candidates)
		return nil
	})
	_ = g.Wait()

	if ctx.Err() != nil {
		b.logger.Warn("Report build cancelled", zap.Error(ctx.Err()))
	}

	b.logger.Info("Commute report built",
		zap.String("postcode", originPostcode),
		zap.Bool("commute_available", commute.Available()),
		zap.Int("stations", len(stations)),
		zap.Int("primary_schools", len(primarySchools)),
		zap.Duration("took", time.Since(start)))

	return &domain.CommuteReport{
		OriginResolved:     true,
		Origin:             &origin,
		DestinationAddress: destinationAddress,
		Commute:            commute,
		Stations:           stations,
		PrimarySchools:     primarySchools,
	}
}

// annotateDistances заполняет WalkingDistance для каждого места.
// Порядок сохраняется: горутина i пишет только в out[i], чтение после Wait.
func (b *CommuteReportBuilder) annotateDistances(
	ctx context.Context,
	pool *semaphore.Weighted,
	origin domain.Coordinate,
	places []domain.PlaceOfInterest,
) []domain.PlaceOfInterest {
	out := make([]domain.PlaceOfInterest, len(places))
	copy(out, places)

	var g errgroup.Group
	for i := range out {
		i := i
		g.Go(func() error {
			if err := pool.Acquire(ctx, 1); err != nil {
				// вызов отменён: расстояние остаётся nil, место не выбрасывается
				return nil
			}
			defer pool.Release(1)

			out[i].WalkingDistance = b.distance.WalkingDistance(ctx, origin, out[i].Coordinate)
			return nil
		})
	}
	_ = g.Wait()

	return out
}
