package cmd

import "strings"

// normalizeArgs lets one -I/--ignore take several space-separated patterns by
// repeating the flag for every following argument up to the next flag:
// "-I a b c" becomes "-I a -I b -I c". Arguments after "--" are left alone.
func normalizeArgs(args []string) []string {
	normalized := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			normalized = append(normalized, args[i:]...)
			break
		}
		normalized = append(normalized, arg)
		if arg != "-I" && arg != "--"+ignoreFlag {
			continue
		}
		if i+1 >= len(args) {
			continue
		}
		i++
		normalized = append(normalized, args[i])
		for i+1 < len(args) && !isFlagArg(args[i+1]) {
			i++
			normalized = append(normalized, arg, args[i])
		}
	}
	return normalized
}

func isFlagArg(arg string) bool {
	return len(arg) > 1 && strings.HasPrefix(arg, "-")
}
