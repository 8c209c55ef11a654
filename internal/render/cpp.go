package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/berfenger/sen6xgen/pkg/sen6x"
	"github.com/carlmjohnson/versioninfo"
)

// CPP writes the build as C++ statements for the application setup function.
// Construct args become setter calls on the new object.
func CPP(w io.Writer, build *domain.Build) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// generated by %s %s, do not edit\n", GENERATOR, versioninfo.Short())
	if build.Hub.Model != "" {
		fmt.Fprintf(bw, "// model: %s\n", build.Hub.Model)
	}
	for _, ins := range build.Instructions {
		for _, line := range cppLines(ins) {
			bw.WriteString(line)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func cppLines(ins domain.Instruction) []string {
	switch ins.Op {
	case domain.OP_CONSTRUCT:
		lines := []string{fmt.Sprintf("auto *%s = new %s();", ins.Target, ins.Class)}
		for _, a := range ins.Args {
			lines = append(lines, fmt.Sprintf("%s->%s(%s);", ins.Target, sen6x.ArgSetter(a.Name), cppValue(a)))
		}
		return lines
	case domain.OP_REGISTER:
		return []string{fmt.Sprintf("App.register_component(%s);", ins.Target)}
	case domain.OP_CALL:
		args := make([]string, 0, len(ins.Args))
		for _, a := range ins.Args {
			args = append(args, cppValue(a))
		}
		joined := strings.Join(args, ", ")
		if ins.Aggregate {
			joined = "{" + joined + "}"
		}
		line := fmt.Sprintf("%s->%s(%s);", ins.Target, ins.Method, joined)
		if ins.Method == sen6x.SetTemperatureCompensation && len(ins.Args) == 3 {
			line += compensationComment(ins.Args)
		}
		return []string{line}
	}
	return []string{fmt.Sprintf("// unsupported instruction %q", ins.Op)}
}

func compensationComment(args []domain.Arg) string {
	offset, _ := args[0].Value.(float64)
	slope, _ := args[1].Value.(float64)
	tc, _ := args[2].Value.(int64)
	o, s, t := sen6x.ScaledTemperatureCompensation(offset, slope, tc)
	return fmt.Sprintf("  // device: offset=%d slope=%d time_constant=%d", o, s, t)
}

func cppValue(a domain.Arg) string {
	if a.Ref {
		return fmt.Sprint(a.Value)
	}
	switch v := a.Value.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s + "f"
	}
	return fmt.Sprint(a.Value)
}
