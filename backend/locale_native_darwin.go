//go:build darwin

package backend

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Foundation
#include <stdlib.h>
#import <Foundation/Foundation.h>

static char* currentLocaleIdentifier() {
	@autoreleasepool {
		NSString *identifier = [[NSLocale currentLocale] localeIdentifier];
		if (identifier == nil || [identifier length] == 0) {
			return NULL;
		}
		return strdup([identifier UTF8String]);
	}
}
*/
import "C"
import "unsafe"

// detectNativeSystemLocale はmacOSの現在のロケール（例: ja_JP, en_US）を返す。
func detectNativeSystemLocale() string {
	identifier := C.currentLocaleIdentifier()
	if identifier == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(identifier))
	return C.GoString(identifier)
}
