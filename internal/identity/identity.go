// Package identity derives the stable identifiers written into generated
// project and solution files.
//
// Editors cache project identifiers, so the same inputs must produce the
// same identifier on every run and every machine.
package identity

import (
	"crypto/md5"
	"strings"

	"github.com/google/uuid"
)

// CSharpProjectType is the well-known project-type tag for C# projects.
const CSharpProjectType = "FAE04EC0-301F-11D3-BF4B-00C04F79EFBC"

// projectSalt is appended to every project seed.
const projectSalt = "salt"

// IdentifierFor hashes the UTF-8 bytes of seed with MD5 and formats the
// 16-byte digest as an upper-case, dashed UUID string.
//
// The digest is used verbatim (no RFC 4122 version bits are forced), so
// the output is byte-for-byte the hex of the hash:
//
//	IdentifierFor("abc") == "90015098-3CD2-4FB0-D696-3F7D28E17F72"
func IdentifierFor(seed string) string {
	sum := md5.Sum([]byte(seed))
	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		panic(err) // unreachable: md5 sums are 16 bytes
	}
	return strings.ToUpper(id.String())
}

// ProjectIdentifier returns the identifier of the project generated for
// assemblyName within the project group.
func ProjectIdentifier(projectGroupName, assemblyName string) string {
	return IdentifierFor(projectGroupName + assemblyName + projectSalt)
}

// SolutionIdentifier returns the project-type identifier used in solution
// entries for projects whose sources have fileExtension (without dot).
func SolutionIdentifier(projectGroupName, fileExtension string) string {
	if strings.EqualFold(fileExtension, "cs") {
		return CSharpProjectType
	}
	return IdentifierFor(projectGroupName + "." + strings.ToLower(fileExtension))
}
