package config

import (
	"fmt"
	"maps"
	"strings"

	"fieldsync/internal/diagnostic"
	"fieldsync/internal/dom"
	"fieldsync/internal/match"
	"fieldsync/internal/progress"
	"fieldsync/internal/synchronizer"
	"fieldsync/internal/textpattern"
)

// Validate checks a configuration. When doc is not nil, element ids are
// checked against it. Problems that would make Process fail are errors;
// configurations that process but do nothing useful are warnings.
func Validate(f *File, doc *dom.Document) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeInvalidValue, "config file is nil", "")
		return res
	}

	reportUnknownKeys(res, "", f.unknown, KnownFileKeys())

	if f.Delimiters != nil && (f.Delimiters.Open == "") != (f.Delimiters.Close == "") {
		res.AddError(diagnostic.CodeNotYetSupported,
			fmt.Sprintf("delimiters %q/%q: opener and closer must both be set", f.Delimiters.Open, f.Delimiters.Close),
			"delimiters")
	}

	if f.Field != "" && doc != nil && doc.ElementByID(f.Field) == nil {
		res.AddError(diagnostic.CodeUnknownElement, fmt.Sprintf("field element %q not found", f.Field), "field")
	}

	global, ok := normalizeVariables(res, "variables", f.Variables)
	if ok {
		validateVariables(res, "variables", global, global)
	}

	delim := textpattern.DefaultDelimiters
	if f.Delimiters != nil {
		delim = f.Delimiters.Pattern()
	}

	for i := range f.Targets {
		validateTarget(res, fmt.Sprintf("applyTo[%d]", i), &f.Targets[i], global, delim, doc)
	}

	if f.Progress != nil {
		validateProgress(res, "progress", f.Progress, doc)
	}

	return res
}

func validateProgress(res *diagnostic.Diagnostics, path string, p *Progress, doc *dom.Document) {
	reportUnknownKeys(res, path, p.unknown, KnownProgressKeys())

	if p.ID != "" && doc != nil && doc.ElementByID(p.ID) == nil {
		res.AddError(diagnostic.CodeUnknownElement, fmt.Sprintf("progress element %q not found", p.ID), path+".id")
	}

	if _, err := p.Intervals(); err != nil {
		res.AddError(diagnostic.CodeInvalidValue, err.Error(), path+".colors")
	}

	if _, err := progress.ToColor(p.BarColor); err != nil {
		res.AddError(diagnostic.CodeInvalidValue, fmt.Sprintf("barColor: %v", err), path+".barColor")
	}
}

func validateTarget(
	res *diagnostic.Diagnostics,
	path string,
	t *Target,
	global synchronizer.Variables,
	delim textpattern.Delimiters,
	doc *dom.Document,
) {
	reportUnknownKeys(res, path, t.unknown, KnownTargetKeys())

	validateUpdatable(res, path+".updatable", t.Updatable, doc)

	switch {
	case t.Text != "":
		if t.HasConcat() {
			res.AddInfo(diagnostic.CodeConflictingOutput, "prefix and suffix are ignored when text is set", path)
		}

		local, ok := normalizeVariables(res, path+".variables", t.Variables)
		if !ok {
			return
		}

		for _, name := range local.Names() {
			if _, shadowed := global[name]; shadowed {
				res.AddInfo(diagnostic.CodeShadowedVariable,
					fmt.Sprintf("variable %q overrides the global variable", name), path+".variables."+name)
			}
		}

		merged := maps.Clone(global)
		if merged == nil {
			merged = synchronizer.Variables{}
		}

		maps.Copy(merged, local)

		validateVariables(res, path+".variables", local, merged)

		for _, name := range textpattern.New(t.Text, delim).Placeholders() {
			if name == "this" {
				continue
			}

			if _, ok := merged[name]; !ok {
				reportUnknownVariable(res, path+".text", name, merged)
				continue
			}

			if reason := unsupportedPlaceholder(name, merged); reason != "" {
				res.AddError(diagnostic.CodeNotYetSupported,
					fmt.Sprintf("placeholder %q: %s", name, reason), path+".text")
			}
		}
	case t.HasConcat():
		if t.Expression != "" || t.Variable != "" {
			res.AddError(diagnostic.CodeNotYetSupported, "computed prefix or suffix is not supported yet", path)
		}
	default:
		res.AddWarning(diagnostic.CodeNoOutput, "target has neither text nor prefix/suffix and writes nothing", path)
	}
}

func validateUpdatable(res *diagnostic.Diagnostics, path string, u Updatable, doc *dom.Document) {
	switch {
	case u.IsZero():
		res.AddError(diagnostic.CodeNoUpdatable, "target has no updatable", path)
	case u.List != nil:
		res.AddError(diagnostic.CodeNotYetSupported, "lists of updatables are not supported yet", path)
	case u.Selector != "":
		res.AddError(diagnostic.CodeNotYetSupported, "selector updatables are not supported yet", path)
	case u.Field != "" && u.ID == "":
		res.AddError(diagnostic.CodeNotYetSupported, "field updatables are not supported yet", path)
	case doc == nil:
	case u.Ref != "" && strings.HasPrefix(u.Ref, "[["):
	default:
		id := u.Ref
		if id == "" {
			id = u.ID
		}

		if doc.ElementByID(id) == nil {
			res.AddError(diagnostic.CodeUnknownElement, fmt.Sprintf("element %q not found", id), path)
		}
	}
}

func normalizeVariables(res *diagnostic.Diagnostics, path string, vm VariableMap) (synchronizer.Variables, bool) {
	vars, err := synchronizer.NormalizeVariables(synchronizer.Variables(vm))
	if err != nil {
		res.AddError(diagnostic.CodeInvalidValue, err.Error(), path)
		return nil, false
	}

	return vars, true
}

// validateVariables checks the variables of vars, resolving references
// through scope.
func validateVariables(res *diagnostic.Diagnostics, path string, vars, scope synchronizer.Variables) {
	for _, name := range vars.Names() {
		v, ok := vars[name].(*synchronizer.Variable)
		if !ok {
			continue
		}

		vpath := path + "." + name

		if v.Operator != "" {
			res.AddWarning(diagnostic.CodeNotYetSupported,
				fmt.Sprintf("operator %q is not supported yet", v.Operator), vpath)
		}

		switch v.Kind {
		case synchronizer.VariableExpression:
			res.AddWarning(diagnostic.CodeNotYetSupported,
				fmt.Sprintf("expression %q is not evaluated yet", v.Expression), vpath)
		case synchronizer.VariableReference:
			validateReference(res, vpath, v, scope)
		}
	}
}

// unsupportedPlaceholder follows references from name and reports why the
// variable it ends on cannot be substituted, or "" when it can.
func unsupportedPlaceholder(name string, scope synchronizer.Variables) string {
	for seen := map[string]bool{}; !seen[name]; {
		seen[name] = true

		v, ok := scope[name].(*synchronizer.Variable)
		if !ok {
			return ""
		}

		switch {
		case v.Operator != "":
			return fmt.Sprintf("operator %q is not supported yet", v.Operator)
		case v.Kind == synchronizer.VariableExpression:
			return fmt.Sprintf("expression %q is not evaluated yet", v.Expression)
		case v.Kind == synchronizer.VariableReference:
			name = v.Reference
		default:
			return ""
		}
	}

	return ""
}

func validateReference(res *diagnostic.Diagnostics, path string, v *synchronizer.Variable, scope synchronizer.Variables) {
	seen := map[string]bool{v.Name: true}

	for cur := v; cur != nil && cur.Kind == synchronizer.VariableReference; {
		ref := cur.Reference
		if ref == "" {
			res.AddError(diagnostic.CodeInvalidValue, "reference names no variable", path)
			return
		}

		if ref == "this" {
			return
		}

		if seen[ref] {
			res.AddError(diagnostic.CodeVariableCycle, fmt.Sprintf("reference cycle through %q", ref), path)
			return
		}

		seen[ref] = true

		next, ok := scope[ref]
		if !ok {
			reportUnknownVariable(res, path, ref, scope)
			return
		}

		cur, _ = next.(*synchronizer.Variable)
	}
}

func reportUnknownVariable(res *diagnostic.Diagnostics, path, name string, scope synchronizer.Variables) {
	msg := fmt.Sprintf("variable %q is not defined", name)

	if s, ok := match.Suggest(name, scope.Names()); ok {
		res.AddError(diagnostic.CodeUnknownVariable, msg, path, s)
		return
	}

	res.AddError(diagnostic.CodeUnknownVariable, msg, path)
}

func reportUnknownKeys(res *diagnostic.Diagnostics, path string, unknown, known []string) {
	for _, k := range unknown {
		kpath := k
		if path != "" {
			kpath = path + "." + k
		}

		msg := fmt.Sprintf("unknown key %q is ignored", k)

		if s, ok := match.Suggest(k, known); ok {
			res.AddWarning(diagnostic.CodeUnknownKey, msg, kpath, s)
			continue
		}

		res.AddWarning(diagnostic.CodeUnknownKey, msg, kpath)
	}
}
