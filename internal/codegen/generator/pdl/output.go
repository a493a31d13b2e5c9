package pdl

import (
	"fmt"
	"io"
	"strings"

	"github.com/dkogan/cvbindgen/internal/codegen/meta"
)

// ConstTableName is the well-known name the aggregated constant table is
// exported under.
const ConstTableName = "cvconst"

// WriteFile emits the complete generated PP source: one pp_def per binding
// plus, when any constants were collected, the exported constant table.
func WriteFile(w io.Writer, md *meta.Metadata, version string) error {
	if _, err := fmt.Fprintf(w, "# Generated by cvbindgen %s. Do not edit.\n\n", version); err != nil {
		return err
	}

	for i := range md.Bindings {
		if err := writeDef(w, &md.Bindings[i]); err != nil {
			return err
		}
	}

	if md.Constants.Len() > 0 {
		if err := writeConstants(w, md.Constants); err != nil {
			return err
		}
	}
	return nil
}

func writeDef(w io.Writer, b *meta.Binding) error {
	letters := make([]string, len(meta.GenTypes))
	for i, gt := range meta.GenTypes {
		letters[i] = "'" + gt.Letter + "'"
	}

	_, err := fmt.Fprintf(w, `pp_def('%s',
        Pars => '%s',
        GenericTypes => [%s],
        Code => <<'EOC',
%sEOC
        Doc => <<'EOD',
%sEOD
);

`, b.Name, b.Pars, strings.Join(letters, ","), b.Code, b.Doc)
	return err
}

func writeConstants(w io.Writer, t *meta.ConstantTable) error {
	var b strings.Builder
	fmt.Fprintf(&b, "pp_addpm(<<'EOPM');\nour %%%s = (\n", ConstTableName)
	for _, name := range t.Names() {
		v, _ := t.Get(name)
		fmt.Fprintf(&b, "    %s => %s,\n", name, v)
	}
	b.WriteString(");\nEOPM\n")
	fmt.Fprintf(&b, "pp_add_exported('', '%%%s');\n", ConstTableName)

	_, err := io.WriteString(w, b.String())
	return err
}
