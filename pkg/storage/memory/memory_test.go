package memory

import (
	"testing"

	"github.com/matzehuels/portfolio/pkg/storage"
	"github.com/matzehuels/portfolio/pkg/storage/storagetest"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store { return New() })
}
