// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/renamerc/pkg/rules"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// Extensions lists the file extensions this parser handles
func (p *HCLParser) Extensions() []string {
	return []string{".hcl"}
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExt(filename, p.Extensions()...)
}

// 📝 Parse reads rule "<old>" { ... } blocks
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*RulesFile, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "rules.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclGuard struct {
		NotPrecededBy []string `hcl:"not_preceded_by,optional"`
		NotFollowedBy []string `hcl:"not_followed_by,optional"`
	}
	type hclRule struct {
		Old        string    `hcl:"old,label"`
		New        string    `hcl:"new"`
		Boundary   string    `hcl:"boundary,optional"`
		IgnoreCase bool      `hcl:"ignore_case,optional"`
		Guard      *hclGuard `hcl:"guard,block"`
	}
	type hclRules struct {
		Rules []hclRule `hcl:"rule,block"`
	}

	// Decode HCL
	var doc hclRules
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &doc)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	f := &RulesFile{}
	for _, r := range doc.Rules {
		rule := rules.RenameRule{
			Old:        r.Old,
			New:        r.New,
			Boundary:   rules.Boundary(r.Boundary),
			IgnoreCase: r.IgnoreCase,
		}
		if r.Guard != nil {
			rule.Guard = &rules.Guard{
				NotPrecededBy: r.Guard.NotPrecededBy,
				NotFollowedBy: r.Guard.NotFollowedBy,
			}
		}
		f.Rules = append(f.Rules, rule)
	}

	return f, nil
}
