package hashutil

import "testing"

func TestIdentifierVariants(t *testing.T) {
	v := IdentifierVariants("process_files_optimized")
	if v.Pascal != "ProcessFilesOptimized" {
		t.Errorf("Pascal = %q, want ProcessFilesOptimized", v.Pascal)
	}
	if v.Camel != "processFilesOptimized" {
		t.Errorf("Camel = %q, want processFilesOptimized", v.Camel)
	}
	if v.Kebab != "process-files-optimized" {
		t.Errorf("Kebab = %q, want process-files-optimized", v.Kebab)
	}
	if v.ScreamingSnake != "PROCESS_FILES_OPTIMIZED" {
		t.Errorf("ScreamingSnake = %q, want PROCESS_FILES_OPTIMIZED", v.ScreamingSnake)
	}
}

func TestIdentifierVariantsFromPascal(t *testing.T) {
	v := IdentifierVariants("ProcessFilesOptimized")
	if v.Snake != "process_files_optimized" {
		t.Errorf("Snake = %q, want process_files_optimized", v.Snake)
	}
}

func TestIdentifierVariantsIdempotent(t *testing.T) {
	once := IdentifierVariants("HTTPServerHandler")
	twice := IdentifierVariants(once.Pascal)
	if once.Pascal != twice.Pascal {
		t.Errorf("expected idempotent Pascal form, got %q then %q", once.Pascal, twice.Pascal)
	}
}
