package services

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/intervalrain/chatbot-api/internal/models"
)

var (
	generations      = []string{"22nm", "28nm", "40nm", "55nm", "90nm", "130nm"}
	technologies     = []string{"BCD", "eHV", "logic-mixed", "flash"}
	categories       = []string{"G-01", "G-02", "G-03", "G-04", "G-05", "G-06"}
	platforms        = []string{"LP", "HPC", "HPC+", "ULP", "ULL"}
	revisionVersions = []string{"1.0.0.0", "1.1.0.0", "1.2.1.1", "1.3.0.0", "1.4.1.1"}
	customMarks      = []string{"A", "B", "C", "D", "E"}
)

const catalogSize = 100

// DocumentService serves the fake DSM catalog. The generator is seeded
// explicitly so listings are reproducible in tests; the lock serializes
// access to the non-thread-safe rand source across requests.
type DocumentService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewDocumentService(seed int64) *DocumentService {
	return &DocumentService{rng: rand.New(rand.NewSource(seed))}
}

// GetDocuments returns a fresh page of generated catalog entries. The user id
// is accepted for contract compatibility; the stub does not scope by user.
func (s *DocumentService) GetDocuments(userID string) []models.DSM {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := make([]models.DSM, 0, catalogSize)
	for i := 0; i < catalogSize; i++ {
		docs = append(docs, s.randomDSM())
	}
	return docs
}

func (s *DocumentService) randomDSM() models.DSM {
	dsm := models.DSM{
		ID:              uuid.NewString(),
		Generation:      pick(s.rng, generations),
		Technology:      pick(s.rng, technologies),
		Category:        pick(s.rng, categories),
		Platform:        pick(s.rng, platforms),
		RevisionVersion: pick(s.rng, revisionVersions),
	}
	if s.rng.Intn(2) == 0 {
		dsm.CustomMark = pick(s.rng, customMarks)
	}

	mark := ""
	if dsm.CustomMark != "" {
		mark = "-" + dsm.CustomMark
	}
	dsm.Name = fmt.Sprintf("%s-%s%s-%s, %s%s.pdf",
		dsm.Category, dsm.Technology, dsm.Generation, dsm.Platform, dsm.RevisionVersion, mark)

	return dsm
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
