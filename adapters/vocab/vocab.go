// Package vocab loads a role vocabulary from an HCL file, overriding the
// built-in role→department membership lists.
//
// File shape:
//
//	department "production" {
//	  roles = ["Резка", "Гибка", "Сборка"]
//	}
//
//	department "office" {
//	  roles = ["Менеджер", "Конструктор"]
//	}
package vocab

import (
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"defect-cost/core/roles"
	"defect-cost/internal/errors"
)

type vocabularyFile struct {
	Departments []departmentBlock `hcl:"department,block"`
}

type departmentBlock struct {
	Name  string   `hcl:"name,label"`
	Roles []string `hcl:"roles"`
}

// Load parses an HCL vocabulary file. Both department blocks must be
// present exactly once.
func Load(path string) (*roles.Vocabulary, error) {
	var file vocabularyFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return nil, errors.Config("parsing vocabulary file "+path, err)
	}

	var production, office []string
	seen := map[string]bool{}
	for _, block := range file.Departments {
		name := strings.ToLower(block.Name)
		if seen[name] {
			return nil, errors.Config("duplicate department block "+block.Name+" in "+path, nil)
		}
		seen[name] = true

		switch name {
		case "production":
			production = block.Roles
		case "office":
			office = block.Roles
		default:
			return nil, errors.Config("unknown department "+block.Name+" in "+path+" (want production or office)", nil)
		}
	}
	if !seen["production"] || !seen["office"] {
		return nil, errors.Config("vocabulary file "+path+" must define both production and office departments", nil)
	}

	return roles.NewVocabulary(production, office), nil
}
