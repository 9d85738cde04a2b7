// Package walletpay connects a merchant checkout to a device-native wallet
// payment session and a payment gateway's tokenization endpoints.
//
// # Adapter
//
// Build an [Adapter] with [New], passing a [Platform] implementation that
// exposes the wallet API, the page's button element and its location. Call
// [Adapter.Init] once with a [ResultHandler] and the [MerchantConfig]; the
// adapter probes device support, asks the gateway whether the token key
// supports 3-D Secure and reveals the wallet button when it does. Options such
// as [WithGatewayURL] and [WithAntiForgery] point the adapter at a gateway and
// attach the anti-forgery header to its requests.
//
// # Payment attempts
//
// A button click runs [Adapter.BeginPayment]. Each attempt builds a fresh
// [PaymentRequest], starts one wallet [Session] and relays two events to the
// gateway:
//
//   - Merchant validation posts the session's validation URL to the gateway and
//     hands the returned merchant session back to the wallet.
//   - Payment authorization exchanges the wallet's payment token for a gateway
//     token, adds a Customer record from the shipping contact and delivers the
//     result to the [ResultHandler].
//
// Every attempt reports exactly one terminal [Outcome] and sends at most one
// completion status to the wallet session.
package walletpay
