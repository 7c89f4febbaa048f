//go:build darwin

package backend

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework Foundation

#import <Cocoa/Cocoa.h>
#import <objc/runtime.h>
#import <objc/message.h>

static IMP originalReopenIMP = NULL;

// 可視ウィンドウがない状態でDockがクリックされたら、隠したメインウィンドウを前面に戻す
static BOOL scribbleHandleReopen(id self, SEL _cmd, id sender, BOOL hasVisibleWindows) {
	if (!hasVisibleWindows) {
		NSWindow *target = nil;
		SEL mainWindowSelector = sel_registerName("mainWindow");
		if (self != nil && [self respondsToSelector:mainWindowSelector]) {
			id candidate = ((id(*)(id, SEL))objc_msgSend)(self, mainWindowSelector);
			if (candidate != nil && [candidate isKindOfClass:[NSWindow class]]) {
				target = (NSWindow*)candidate;
			}
		}
		if (target == nil && [[NSApp windows] count] > 0) {
			target = [NSApp windows][0];
		}
		if (target != nil) {
			[target makeKeyAndOrderFront:nil];
			[NSApp activateIgnoringOtherApps:YES];
			return YES;
		}
	}

	if (originalReopenIMP != NULL) {
		return ((BOOL(*)(id, SEL, id, BOOL))originalReopenIMP)(self, _cmd, sender, hasVisibleWindows);
	}
	return YES;
}

static void installReopenHandler(void) {
	Class cls = objc_getClass("AppDelegate");
	if (cls == Nil) {
		return;
	}

	SEL selector = sel_registerName("applicationShouldHandleReopen:hasVisibleWindows:");
	Method method = class_getInstanceMethod(cls, selector);
	if (method == NULL) {
		class_addMethod(cls, selector, (IMP)scribbleHandleReopen, "B@:@B");
		return;
	}

	IMP current = method_getImplementation(method);
	if (current == (IMP)scribbleHandleReopen) {
		return;
	}
	originalReopenIMP = current;
	method_setImplementation(method, (IMP)scribbleHandleReopen);
}
*/
import "C"

// InstallDockReopenHandler はDockのクリックで隠したウィンドウを再表示させる。
// Wails v2 は非表示のウィンドウをDockから戻さないため、AppDelegateを差し替える
func InstallDockReopenHandler() {
	C.installReopenHandler()
}
