package walletpay

var WithClock = withClock
