package services

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "sync"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  redisclient "github.com/campusorbit/collegelist-backend/internal/clients/redis"
  "github.com/campusorbit/collegelist-backend/internal/content"
  "github.com/campusorbit/collegelist-backend/internal/logger"
  "github.com/campusorbit/collegelist-backend/internal/repos"
  "github.com/campusorbit/collegelist-backend/internal/types"
)

// SiloInfo is the only silo the synthesis ruleset currently supports.
const SiloInfo = "info"

var supportedSilos = map[string]bool{
  SiloInfo: true,
}

func IsSupportedSilo(silo string) bool {
  return supportedSilos[strings.ToLower(strings.TrimSpace(silo))]
}

var (
  ErrUnknownSilo      = errors.New("silo not recognized")
  ErrNoCandidates     = errors.New("no eligible colleges for templatization")
  ErrCollegeNotFound  = errors.New("college not found")
  ErrContentNotFound  = errors.New("generated content not found")
  ErrAlreadyGenerated = errors.New("college already has generated content for this silo")
  ErrEmptyDocument    = errors.New("college has no facts to generate content from")
  ErrGenerationBusy   = errors.New("a bulk generation for this silo is already running")
)

// GenerationFailure reports one candidate that could not be templatized
// during a bulk run. Failures do not abort the batch; successes are still
// written.
type GenerationFailure struct {
  CollegeID uuid.UUID `json:"college_id"`
  Reason    string    `json:"reason"`
}

type BulkResult struct {
  Generated int                       `json:"generated"`
  Documents []*types.GeneratedContent `json:"documents"`
  Failures  []GenerationFailure       `json:"failures,omitempty"`
}

type TemplatizationService interface {
  // GenerateBulk selects every eligible college for the silo, synthesizes
  // one document per college and persists all of them in a single batch
  // insert.
  GenerateBulk(ctx context.Context, silo string) (*BulkResult, error)
  // GenerateOne synthesizes and persists a document for a single college,
  // skipping candidate selection.
  GenerateOne(ctx context.Context, collegeID uuid.UUID, silo string) (*types.GeneratedContent, error)
  // UpdateGenerated overwrites the active flag and/or body of a generated
  // document and returns the owning college for audit purposes.
  UpdateGenerated(ctx context.Context, id uuid.UUID, isActive *bool, description *string) (uuid.UUID, error)
}

type templatizationService struct {
  db              *gorm.DB
  log             *logger.Logger
  collegeRepo     repos.CollegeRepo
  rankingRepo     repos.CollegeRankingRepo
  placementRepo   repos.CollegePlacementRepo
  courseRepo      repos.CollegeCourseRepo
  generatedRepo   repos.GeneratedContentRepo
  activityLog     ActivityLogService
  generationLock  redisclient.GenerationLock
  maxConcurrency  int
}

func NewTemplatizationService(
  db *gorm.DB,
  baseLog *logger.Logger,
  collegeRepo repos.CollegeRepo,
  rankingRepo repos.CollegeRankingRepo,
  placementRepo repos.CollegePlacementRepo,
  courseRepo repos.CollegeCourseRepo,
  generatedRepo repos.GeneratedContentRepo,
  activityLog ActivityLogService,
  generationLock redisclient.GenerationLock,
  maxConcurrency int,
) TemplatizationService {
  serviceLog := baseLog.With("service", "TemplatizationService")
  if maxConcurrency <= 0 {
    maxConcurrency = 8
  }
  return &templatizationService{
    db:             db,
    log:            serviceLog,
    collegeRepo:    collegeRepo,
    rankingRepo:    rankingRepo,
    placementRepo:  placementRepo,
    courseRepo:     courseRepo,
    generatedRepo:  generatedRepo,
    activityLog:    activityLog,
    generationLock: generationLock,
    maxConcurrency: maxConcurrency,
  }
}

// buildBundle fans out every fact read for one college concurrently and
// waits for all of them. Empty results are valid; only query errors fail
// the bundle.
func (s *templatizationService) buildBundle(ctx context.Context, college *types.College) (*content.FactBundle, error) {
  bundle := &content.FactBundle{College: college}
  collegeID := college.ID

  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    best, err := s.rankingRepo.GetBest(gctx, nil, collegeID)
    if err != nil {
      return fmt.Errorf("best ranking: %w", err)
    }
    bundle.BestRanking = best
    return nil
  })
  g.Go(func() error {
    rankings, err := s.rankingRepo.ListRecent(gctx, nil, collegeID)
    if err != nil {
      return fmt.Errorf("recent rankings: %w", err)
    }
    bundle.Rankings = rankings
    return nil
  })
  g.Go(func() error {
    placement, err := s.placementRepo.GetLatest(gctx, nil, collegeID)
    if err != nil {
      return fmt.Errorf("latest placement: %w", err)
    }
    bundle.Placement = placement
    return nil
  })
  g.Go(func() error {
    courses, err := s.courseRepo.ListUsableByLevel(gctx, nil, collegeID, types.CourseLevelUG)
    if err != nil {
      return fmt.Errorf("ug courses: %w", err)
    }
    bundle.UGCourses = courses
    return nil
  })
  g.Go(func() error {
    courses, err := s.courseRepo.ListUsableByLevel(gctx, nil, collegeID, types.CourseLevelPG)
    if err != nil {
      return fmt.Errorf("pg courses: %w", err)
    }
    bundle.PGCourses = courses
    return nil
  })
  g.Go(func() error {
    count, err := s.courseRepo.CountActive(gctx, nil, collegeID)
    if err != nil {
      return fmt.Errorf("course count: %w", err)
    }
    bundle.CourseCount = count
    return nil
  })
  g.Go(func() error {
    streams, err := s.courseRepo.DistinctStreams(gctx, nil, collegeID)
    if err != nil {
      return fmt.Errorf("streams: %w", err)
    }
    bundle.Streams = streams
    return nil
  })

  if err := g.Wait(); err != nil {
    return nil, err
  }
  return bundle, nil
}

func (s *templatizationService) GenerateBulk(ctx context.Context, silo string) (*BulkResult, error) {
  if !IsSupportedSilo(silo) {
    return nil, ErrUnknownSilo
  }
  silo = strings.ToLower(strings.TrimSpace(silo))

  if s.generationLock != nil {
    ok, err := s.generationLock.Acquire(ctx, silo)
    if err != nil {
      s.log.Warn("Generation lock unavailable, continuing without it", "error", err, "silo", silo)
    } else if !ok {
      return nil, ErrGenerationBusy
    } else {
      defer func() {
        if err := s.generationLock.Release(context.WithoutCancel(ctx), silo); err != nil {
          s.log.Warn("Failed to release generation lock", "error", err, "silo", silo)
        }
      }()
    }
  }

  candidateIDs, err := s.collegeRepo.ListTemplatizationCandidateIDs(ctx, nil, silo)
  if err != nil {
    return nil, fmt.Errorf("select candidates: %w", err)
  }
  if len(candidateIDs) == 0 {
    return nil, ErrNoCandidates
  }

  colleges, err := s.collegeRepo.GetByIDs(ctx, nil, candidateIDs)
  if err != nil {
    return nil, fmt.Errorf("load candidates: %w", err)
  }

  var (
    mu       sync.Mutex
    docs     []*types.GeneratedContent
    failures []GenerationFailure
  )

  // Candidates are independent; fan them out and collect per-candidate
  // results instead of letting one bad read abort the whole run. Document
  // order is completion order and deliberately carries no guarantee.
  g, gctx := errgroup.WithContext(ctx)
  g.SetLimit(s.maxConcurrency)
  for _, college := range colleges {
    college := college
    g.Go(func() error {
      doc, err := s.synthesize(gctx, college, silo)
      mu.Lock()
      defer mu.Unlock()
      if err != nil {
        failures = append(failures, GenerationFailure{CollegeID: college.ID, Reason: err.Error()})
        return nil
      }
      docs = append(docs, doc)
      return nil
    })
  }
  if err := g.Wait(); err != nil {
    return nil, err
  }

  if len(docs) == 0 {
    return nil, fmt.Errorf("all %d candidates failed: %s", len(failures), failures[0].Reason)
  }

  if _, err := s.generatedRepo.Create(ctx, nil, docs); err != nil {
    s.log.Error("Batch insert of generated content failed", "error", err, "silo", silo, "count", len(docs))
    return nil, fmt.Errorf("persist generated content: %w", err)
  }

  result := &BulkResult{Generated: len(docs), Documents: docs, Failures: failures}
  collegeIDs := make([]string, 0, len(docs))
  for _, doc := range docs {
    collegeIDs = append(collegeIDs, doc.CollegeID.String())
  }
  if err := s.activityLog.Record(ctx, nil, types.ActivityOpGenerateBulk, uuid.Nil,
    fmt.Sprintf("Generated %d %q articles in bulk", len(docs), silo),
    map[string]interface{}{
      "silo":        silo,
      "generated":   len(docs),
      "failed":      len(failures),
      "college_ids": collegeIDs,
    }); err != nil {
    return nil, err
  }

  s.log.Info("Bulk templatization finished", "silo", silo, "generated", len(docs), "failed", len(failures))
  return result, nil
}

func (s *templatizationService) GenerateOne(ctx context.Context, collegeID uuid.UUID, silo string) (*types.GeneratedContent, error) {
  if !IsSupportedSilo(silo) {
    return nil, ErrUnknownSilo
  }
  silo = strings.ToLower(strings.TrimSpace(silo))

  colleges, err := s.collegeRepo.GetByIDs(ctx, nil, []uuid.UUID{collegeID})
  if err != nil {
    return nil, fmt.Errorf("load college: %w", err)
  }
  if len(colleges) == 0 {
    return nil, ErrCollegeNotFound
  }

  exists, err := s.generatedRepo.ExistsForCollegeSilo(ctx, nil, collegeID, silo)
  if err != nil {
    return nil, fmt.Errorf("check existing content: %w", err)
  }
  if exists {
    return nil, ErrAlreadyGenerated
  }

  doc, err := s.synthesize(ctx, colleges[0], silo)
  if err != nil {
    return nil, err
  }
  if _, err := s.generatedRepo.Create(ctx, nil, []*types.GeneratedContent{doc}); err != nil {
    s.log.Error("Insert of generated content failed", "error", err, "silo", silo, "college_id", collegeID)
    return nil, fmt.Errorf("persist generated content: %w", err)
  }

  if err := s.activityLog.Record(ctx, nil, types.ActivityOpGenerateSingle, collegeID,
    fmt.Sprintf("Generated %q article for %s", silo, colleges[0].Name),
    map[string]interface{}{
      "silo":       silo,
      "content_id": doc.ID.String(),
    }); err != nil {
    return nil, err
  }
  return doc, nil
}

// synthesize aggregates the fact bundle, composes the sections and renders
// one inactive document. An empty section list means the college has no
// renderable facts at all.
func (s *templatizationService) synthesize(ctx context.Context, college *types.College, silo string) (*types.GeneratedContent, error) {
  bundle, err := s.buildBundle(ctx, college)
  if err != nil {
    return nil, err
  }
  sections := content.Assemble(bundle)
  if len(sections) == 0 {
    return nil, ErrEmptyDocument
  }
  now := time.Now()
  return &types.GeneratedContent{
    ID:        uuid.New(),
    CollegeID: college.ID,
    Silo:      silo,
    Body:      content.Render(sections),
    IsActive:  false,
    CreatedAt: now,
    UpdatedAt: now,
  }, nil
}

func (s *templatizationService) UpdateGenerated(ctx context.Context, id uuid.UUID, isActive *bool, description *string) (uuid.UUID, error) {
  doc, err := s.generatedRepo.GetByID(ctx, nil, id)
  if err != nil {
    return uuid.Nil, fmt.Errorf("load generated content: %w", err)
  }
  if doc == nil {
    return uuid.Nil, ErrContentNotFound
  }

  updates := map[string]interface{}{}
  if isActive != nil {
    updates["is_active"] = *isActive
  }
  if description != nil {
    updates["body"] = *description
  }
  if len(updates) > 0 {
    if err := s.generatedRepo.Update(ctx, nil, id, updates); err != nil {
      s.log.Error("Update of generated content failed", "error", err, "content_id", id)
      return uuid.Nil, fmt.Errorf("update generated content: %w", err)
    }
  }

  meta := map[string]interface{}{
    "content_id": id.String(),
    "silo":       doc.Silo,
  }
  if isActive != nil {
    meta["is_active"] = *isActive
  }
  if err := s.activityLog.Record(ctx, nil, types.ActivityOpUpdate, doc.CollegeID,
    fmt.Sprintf("Updated generated %q article", doc.Silo), meta); err != nil {
    return uuid.Nil, err
  }
  return doc.CollegeID, nil
}
