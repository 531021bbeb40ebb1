// Useful, module-internal Go helper functions
package internal

import (
	"net/url"
	"path"
)

func URLMustParse(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

func URLWithPath(u *url.URL, s ...string) *url.URL {
	c := []string{u.Path}
	c = append(c, s...)

	u2 := *u
	u2.Path = path.Join(c...)
	return &u2
}
