package metadata

import "testing"

func TestValidateRegistryHasAParserForEveryEDMType(t *testing.T) {
	if err := ValidateRegistry(); err != nil {
		t.Fatalf("ValidateRegistry() error = %v", err)
	}
}

func TestEDMTypeCoversEverySQLType(t *testing.T) {
	for _, st := range allSQLTypes {
		if EDMType(st) == "" {
			t.Errorf("EDMType(%v) returned an empty CSDL type name", st)
		}
	}
}
