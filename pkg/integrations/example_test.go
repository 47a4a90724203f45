package integrations_test

import (
	"fmt"

	"github.com/stakpak/paks-og/pkg/integrations"
)

func ExampleURLEncode() {
	fmt.Println(integrations.URLEncode("acme"))
	fmt.Println(integrations.URLEncode("my pak"))
	// Output:
	// acme
	// my+pak
}

func ExampleAPIError() {
	err := &integrations.APIError{Status: 422, Code: "bad_query", Message: "owner required"}
	fmt.Println(err)
	// Output:
	// api error (422 bad_query): owner required
}
