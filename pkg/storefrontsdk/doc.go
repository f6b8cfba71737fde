/*
Package storefrontsdk is a Go client for the storefront API and the home of
its wire types, which the server encodes directly.

Public endpoints hang off SDKClient:

	client := storefrontsdk.NewSDKClient("http://localhost:8080")
	user, err := client.Register(ctx, storefrontsdk.RegisterRequest{...})
	session, err := client.Login(ctx, "a@b.com", "secret")

Everything behind authentication goes through the returned Session, which
sends its token as a bearer header:

	me, err := session.Current(ctx)
	page, err := session.ListProducts(ctx, storefrontsdk.ListProductsOptions{Sort: "asc"})

Non-2xx responses come back as *APIError; IsStatus checks the code.
Session tokens are not refreshed, when one expires log in again.
*/
package storefrontsdk
