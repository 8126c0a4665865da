package services

import (
  "context"
  "errors"
  "fmt"
  "strings"
  "testing"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/campusorbit/collegelist-backend/internal/logger"
  "github.com/campusorbit/collegelist-backend/internal/repos"
  "github.com/campusorbit/collegelist-backend/internal/requestdata"
  "github.com/campusorbit/collegelist-backend/internal/types"
)

type serviceFixture struct {
  db      *gorm.DB
  log     *logger.Logger
  service TemplatizationService
}

func newServiceFixture(t *testing.T) *serviceFixture {
  t.Helper()
  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
  gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  sqlDB, err := gdb.DB()
  if err != nil {
    t.Fatalf("unwrap sql.DB: %v", err)
  }
  sqlDB.SetMaxOpenConns(1)
  if err := gdb.AutoMigrate(
    &types.College{},
    &types.CollegeRanking{},
    &types.CollegePlacement{},
    &types.CollegeCourse{},
    &types.CollegeContent{},
    &types.GeneratedContent{},
    &types.ActivityLog{},
  ); err != nil {
    t.Fatalf("migrate: %v", err)
  }

  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger: %v", err)
  }

  fx := &serviceFixture{db: gdb, log: log}
  fx.service = fx.newService(repos.NewCollegeRankingRepo(gdb, log))
  return fx
}

// newService lets a test swap in a misbehaving ranking repo while keeping the
// rest of the wiring real.
func (fx *serviceFixture) newService(rankingRepo repos.CollegeRankingRepo) TemplatizationService {
  return NewTemplatizationService(
    fx.db,
    fx.log,
    repos.NewCollegeRepo(fx.db, fx.log),
    rankingRepo,
    repos.NewCollegePlacementRepo(fx.db, fx.log),
    repos.NewCollegeCourseRepo(fx.db, fx.log),
    repos.NewGeneratedContentRepo(fx.db, fx.log),
    NewActivityLogService(fx.db, fx.log, repos.NewActivityLogRepo(fx.db, fx.log)),
    nil,
    2,
  )
}

func actorContext(actorID uuid.UUID) context.Context {
  return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{ActorID: actorID, Role: "admin"})
}

func strPtr(s string) *string   { return &s }
func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }

func seedFullCollege(t *testing.T, gdb *gorm.DB, name string) *types.College {
  t.Helper()
  c := &types.College{
    ID:              uuid.New(),
    Name:            name,
    EstablishedYear: intPtr(1960),
    City:            strPtr("Pune"),
    State:           strPtr("Maharashtra"),
    IsActive:        true,
  }
  if err := gdb.Create(c).Error; err != nil {
    t.Fatalf("seed college: %v", err)
  }
  course := &types.CollegeCourse{
    ID: uuid.New(), CollegeID: c.ID, Name: strPtr("B.Tech"),
    Level: types.CourseLevelUG, DurationType: types.DurationTypeYears,
    Duration: f64Ptr(4), Fee: f64Ptr(120000), IsActive: true,
  }
  if err := gdb.Create(course).Error; err != nil {
    t.Fatalf("seed course: %v", err)
  }
  return c
}

func TestGenerateBulkUnknownSilo(t *testing.T) {
  fx := newServiceFixture(t)
  if _, err := fx.service.GenerateBulk(context.Background(), "press-releases"); !errors.Is(err, ErrUnknownSilo) {
    t.Fatalf("got %v, want ErrUnknownSilo", err)
  }
}

func TestGenerateBulkNoCandidates(t *testing.T) {
  fx := newServiceFixture(t)
  if _, err := fx.service.GenerateBulk(context.Background(), SiloInfo); !errors.Is(err, ErrNoCandidates) {
    t.Fatalf("got %v, want ErrNoCandidates", err)
  }
}

func TestGenerateBulkWritesOneBatchAndAudits(t *testing.T) {
  fx := newServiceFixture(t)
  first := seedFullCollege(t, fx.db, "First College")
  second := seedFullCollege(t, fx.db, "Second College")

  // Covered college must not be selected.
  covered := seedFullCollege(t, fx.db, "Covered College")
  if err := fx.db.Create(&types.CollegeContent{ID: uuid.New(), CollegeID: covered.ID, Silo: SiloInfo, IsActive: true}).Error; err != nil {
    t.Fatalf("seed content: %v", err)
  }

  actor := uuid.New()
  result, err := fx.service.GenerateBulk(actorContext(actor), SiloInfo)
  if err != nil {
    t.Fatalf("GenerateBulk: %v", err)
  }
  if result.Generated != 2 || len(result.Failures) != 0 {
    t.Fatalf("got %d generated / %d failures, want 2 / 0", result.Generated, len(result.Failures))
  }

  var docs []*types.GeneratedContent
  if err := fx.db.Find(&docs).Error; err != nil {
    t.Fatalf("load docs: %v", err)
  }
  if len(docs) != 2 {
    t.Fatalf("got %d persisted docs, want 2", len(docs))
  }
  seen := map[uuid.UUID]bool{}
  for _, doc := range docs {
    seen[doc.CollegeID] = true
    if doc.IsActive {
      t.Fatal("generated documents must start inactive")
    }
    if doc.Silo != SiloInfo || !strings.Contains(doc.Body, "toc-1") {
      t.Fatalf("unexpected document: %+v", doc)
    }
  }
  if !seen[first.ID] || !seen[second.ID] || seen[covered.ID] {
    t.Fatalf("wrong candidate set: %v", seen)
  }

  var audits []*types.ActivityLog
  if err := fx.db.Find(&audits).Error; err != nil {
    t.Fatalf("load audits: %v", err)
  }
  if len(audits) != 1 {
    t.Fatalf("got %d audit rows, want exactly 1", len(audits))
  }
  if audits[0].ActorID != actor || audits[0].Operation != types.ActivityOpGenerateBulk {
    t.Fatalf("unexpected audit row: %+v", audits[0])
  }

  // Second run: everything already templatized.
  if _, err := fx.service.GenerateBulk(actorContext(actor), SiloInfo); !errors.Is(err, ErrNoCandidates) {
    t.Fatalf("re-run should find no candidates, got %v", err)
  }
}

// failingRankingRepo fails every read for one college so bulk runs can be
// tested against the skip-and-report policy.
type failingRankingRepo struct {
  repos.CollegeRankingRepo
  failFor uuid.UUID
}

func (f *failingRankingRepo) GetBest(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID) (*types.CollegeRanking, error) {
  if collegeID == f.failFor {
    return nil, errors.New("ranking store unavailable")
  }
  return f.CollegeRankingRepo.GetBest(ctx, tx, collegeID)
}

func TestGenerateBulkSkipsAndReportsFailedCandidates(t *testing.T) {
  fx := newServiceFixture(t)
  healthy := seedFullCollege(t, fx.db, "Healthy College")
  broken := seedFullCollege(t, fx.db, "Broken College")

  service := fx.newService(&failingRankingRepo{
    CollegeRankingRepo: repos.NewCollegeRankingRepo(fx.db, fx.log),
    failFor:            broken.ID,
  })
  result, err := service.GenerateBulk(actorContext(uuid.New()), SiloInfo)
  if err != nil {
    t.Fatalf("GenerateBulk: %v", err)
  }
  if result.Generated != 1 {
    t.Fatalf("got %d generated, want 1", result.Generated)
  }
  if len(result.Failures) != 1 || result.Failures[0].CollegeID != broken.ID {
    t.Fatalf("got failures %v, want exactly the broken college", result.Failures)
  }

  var count int64
  if err := fx.db.Model(&types.GeneratedContent{}).Count(&count).Error; err != nil {
    t.Fatalf("count docs: %v", err)
  }
  if count != 1 {
    t.Fatalf("got %d persisted docs, want only the healthy one", count)
  }

  var docs []*types.GeneratedContent
  if err := fx.db.Find(&docs).Error; err != nil {
    t.Fatalf("load docs: %v", err)
  }
  if docs[0].CollegeID != healthy.ID {
    t.Fatalf("persisted doc belongs to %s, want the healthy college", docs[0].CollegeID)
  }
}

func TestGenerateOne(t *testing.T) {
  fx := newServiceFixture(t)
  ctx := actorContext(uuid.New())

  if _, err := fx.service.GenerateOne(ctx, uuid.New(), SiloInfo); !errors.Is(err, ErrCollegeNotFound) {
    t.Fatalf("got %v, want ErrCollegeNotFound", err)
  }

  college := seedFullCollege(t, fx.db, "Solo College")
  doc, err := fx.service.GenerateOne(ctx, college.ID, SiloInfo)
  if err != nil {
    t.Fatalf("GenerateOne: %v", err)
  }
  if doc.IsActive || doc.CollegeID != college.ID {
    t.Fatalf("unexpected document: %+v", doc)
  }

  if _, err := fx.service.GenerateOne(ctx, college.ID, SiloInfo); !errors.Is(err, ErrAlreadyGenerated) {
    t.Fatalf("got %v, want ErrAlreadyGenerated", err)
  }

  var audits []*types.ActivityLog
  if err := fx.db.Where("operation = ?", types.ActivityOpGenerateSingle).Find(&audits).Error; err != nil {
    t.Fatalf("load audits: %v", err)
  }
  if len(audits) != 1 || audits[0].SubjectID != college.ID {
    t.Fatalf("expected one audit row for the college, got %v", audits)
  }
}

func TestGenerateOneRejectsFactlessCollege(t *testing.T) {
  fx := newServiceFixture(t)
  ctx := actorContext(uuid.New())

  // Name only: no founding year, location, courses, rankings or placements.
  bare := &types.College{ID: uuid.New(), Name: "Empty College", IsActive: true}
  if err := fx.db.Create(bare).Error; err != nil {
    t.Fatalf("seed college: %v", err)
  }

  if _, err := fx.service.GenerateOne(ctx, bare.ID, SiloInfo); !errors.Is(err, ErrEmptyDocument) {
    t.Fatalf("got %v, want ErrEmptyDocument", err)
  }

  var count int64
  if err := fx.db.Model(&types.GeneratedContent{}).Count(&count).Error; err != nil {
    t.Fatalf("count docs: %v", err)
  }
  if count != 0 {
    t.Fatalf("got %d persisted docs, want none", count)
  }
}

func TestUpdateGenerated(t *testing.T) {
  fx := newServiceFixture(t)
  ctx := actorContext(uuid.New())

  if _, err := fx.service.UpdateGenerated(ctx, uuid.New(), nil, nil); !errors.Is(err, ErrContentNotFound) {
    t.Fatalf("got %v, want ErrContentNotFound", err)
  }

  college := seedFullCollege(t, fx.db, "Editable College")
  doc, err := fx.service.GenerateOne(ctx, college.ID, SiloInfo)
  if err != nil {
    t.Fatalf("GenerateOne: %v", err)
  }

  active := true
  body := "<section>edited</section>"
  ownerID, err := fx.service.UpdateGenerated(ctx, doc.ID, &active, &body)
  if err != nil {
    t.Fatalf("UpdateGenerated: %v", err)
  }
  if ownerID != college.ID {
    t.Fatalf("got owner %s, want %s", ownerID, college.ID)
  }

  var stored types.GeneratedContent
  if err := fx.db.First(&stored, "id = ?", doc.ID).Error; err != nil {
    t.Fatalf("load doc: %v", err)
  }
  if !stored.IsActive || stored.Body != body {
    t.Fatalf("update not applied: %+v", stored)
  }
}
