package story

import (
	"fmt"
	"sort"
	"strings"
)

// Art names
const (
	ArtTree    = "tree"
	ArtSanta   = "santa"
	ArtMCPTree = "mcp-tree"
)

const christmasTree = `
           |
         '.'.'
        -= o =-
         .'.'.
           |
           ,
          / \
        .'. o'.
       / 6 s ^.\
      /.-.o *.-. \
      ` + "`" + `/. '.'9  \` + "`" + `
     .'6. *  s o '.
    /.--.s .6 .--.\
    ` + "`" + `/ s '. .' * .\` + "`" + `
   .' o 6 .` + "`" + ` .^ 6 s'.
  /.---. * ^ o .----.\
  ` + "`" + `/s * \` + "`" + `.^ s.' ^ * \` + "`" + `
 .' o , 6 \` + "`" + `.' ^ o  6 '.
/,-^--,  o ^ * s ,----,\
` + "`" + `'-._s.;-,_6_^,-;._o.-'
     jgs |   |
         ` + "`" + `"""` + "`" + `
`

const santa = `
        Ho Ho Ho!
           _____
         <( ^ ^ )>
           -----
          <(     )>
            | | |
          ==[___]==
`

const mcpTree = `          *
         /|\
        /*|O\
       /*/|\*\
      /X/O|*\X\
     /*/X/|\X\*\
    /O/*/X|*\O\X\
   /X/O/X/|\X\*\O\
  /*/O/*/X|O\X\*\O\
 /X/O/X/*/|\X\O\X\*\
/O/X/*/O/X|*\X\O\X\*\
        |X|
        |X|`

var catalogue = map[string]string{
	ArtTree:    christmasTree,
	ArtSanta:   santa,
	ArtMCPTree: mcpTree,
}

// Art returns the named ASCII art
func Art(name string) (string, error) {
	a, ok := catalogue[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown art %q: expected one of %s", name, strings.Join(ArtNames(), ", "))
	}
	return a, nil
}

// ArtNames lists the catalogue, sorted
func ArtNames() []string {
	names := make([]string, 0, len(catalogue))
	for n := range catalogue {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsTreeTrim reports whether a line of the Christmas tree belongs to the
// star or the trunk rather than the branches.
func IsTreeTrim(index int, line string) bool {
	return index <= 1 || strings.Contains(line, "jgs") || strings.Contains(line, `"""`)
}
